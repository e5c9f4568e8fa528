package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"
)

var SECRET_KEY = os.Getenv("SECRET_KEY")

// JwtIssuer is stamped into every token and checked by RequireAuth.
const JwtIssuer = "JobJumper"

// GenerateStandardToken signs an HS256 access token for the user. The second
// return value is the token id (jti) used by the logout blacklist.
func GenerateStandardToken(userID uuid.UUID) (string, string, error) {
	jti := uuid.New().String()

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        jti,
		Issuer:    JwtIssuer,
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signedToken, err := generatedAccessToken.SignedString([]byte(SECRET_KEY))
	if err != nil {
		return "", "", fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, jti, nil
}

// ValidatedToken parses and verifies an encoded access token.
func ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return []byte(SECRET_KEY), nil
	})
}
