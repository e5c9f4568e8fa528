package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// LogoutController handles user sign-out by blacklisting the JWT token and
// dropping the in-memory session. Remote data is untouched.
type LogoutController struct {
	BlacklistStore JwtBlacklistStore
	Tracker        *tracker.Tracker
}

// NewLogoutController creates a new instance of LogoutController
func NewLogoutController(blacklistStore JwtBlacklistStore, tr *tracker.Tracker) *LogoutController {
	return &LogoutController{
		BlacklistStore: blacklistStore,
		Tracker:        tr,
	}
}

// LogoutHandler handles user logout by blacklisting the JWT token
// @Summary Signs the user out
// @Description Revokes the access token and clears the in-memory session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Failed to revoke token"
// @Router /auth/logout [post]
func (lc *LogoutController) LogoutHandler(c *gin.Context) {

	tokenString, err := utilities.ExtractBearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	claims, err := extractClaims(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	err = lc.BlacklistStore.AddToBlacklist(tokenString, claims.ExpiresAt.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
		return
	}

	if user, err := utilities.ExtractUser(c); err == nil {
		lc.Tracker.Clear(user.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func extractClaims(c *gin.Context) (*jwt.RegisteredClaims, error) {
	claims, ok := c.Get("claims")
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	realClaims, okCast := claims.(*jwt.RegisteredClaims)
	if !okCast {
		return nil, fmt.Errorf("invalid token claims type")
	}
	return realClaims, nil
}
