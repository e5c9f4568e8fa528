package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/logger"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/tracker"
	"JobJumper-backend/internal/utilities"
)

// LocalAuthHandler holds the dependencies for registration and login.
type LocalAuthHandler struct {
	DB      *database.DBinstanceStruct
	Tracker *tracker.Tracker
	Log     *logger.Logger
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided dependencies.
func NewLocalAuthHandler(db *database.DBinstanceStruct, tr *tracker.Tracker, log *logger.Logger) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:      db,
		Tracker: tr,
		Log:     log,
	}
}

type registerInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginInfo struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler handles local registration by receiving username and password
// do nothing if username already exist in the database
// do nothing if password is shorter than 8 characters
// @Summary Handles local registration by receiving username and password
// @Description Username must not already exist and password must longer or equal to 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Credentials for registration"
// @Success 201 {object} model.UserResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username and password must be provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username already exist",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	newUser := model.User{
		Username: info.Username,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}
	if err := lh.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(newUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	if err := lh.Tracker.Hydrate(c.Request.Context(), newUser.ID); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to load user data: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, model.UserResponse{
		User:        newUser,
		AccessToken: accessToken,
	})
}

// LoginHandler handles local login by receiving username and password
// do nothing if username does not exist in the database
// do nothing if password is incorrect
// @Summary Handles local login by receiving username and password
// @Description Username must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Username not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username or password is not provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	// A fresh sign-in always re-hydrates from the store, never reuses a
	// stale session left over from a previous sign-in.
	if err := lh.Tracker.Hydrate(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to load user data: %s", err.Error()),
		})
		return
	}

	lh.Log.Info("user signed in", "user_id", user.ID)

	c.JSON(http.StatusOK, model.UserResponse{
		User:        user,
		AccessToken: accessToken,
	})
}
