// internals/features/users/auth/service/token_service.go
package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"eventorganizer_backend/internals/configs"
)

const accessTTLDefault = 24 * time.Hour

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

// CreateAccessToken issues the HS256 access token the auth middleware
// expects: id + user_name claims, exp/iat. The role claim is informational
// only; authorization always re-reads the profile table.
func CreateAccessToken(userID uuid.UUID, userName, role string) (string, int64, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", 0, err
	}

	now := nowUTC()
	claims := jwt.MapClaims{
		"id":        userID.String(),
		"user_name": userName,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTTLDefault).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}
	return token, int64(accessTTLDefault.Seconds()), nil
}
