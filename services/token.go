package services

import (
	"errors"
	"fmt"
	"time"

	"notesvc/utils"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "notesvc"

var ErrInvalidToken = errors.New("invalid token")

// GenerateAccessToken issues a short-lived token carrying the user identity.
func GenerateAccessToken(userID string) (string, error) {
	return generateToken(userID, "access", time.Duration(utils.JWTExpirationTime)*time.Second)
}

// GenerateRefreshToken issues the long-lived token used only to obtain new
// token pairs.
func GenerateRefreshToken(userID string) (string, error) {
	return generateToken(userID, "refresh", time.Duration(utils.RefreshTokenExpirationTime)*time.Second)
}

func generateToken(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}

// ParseToken validates signature, issuer and expiry, and requires the given
// token type ("access" or "refresh"). It returns the user ID carried by the
// token.
func ParseToken(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(utils.JWTSecretKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// TokenExpiry returns the exp claim of a token without verifying validity,
// for blacklist TTLs on tokens that may already be expired.
func TokenExpiry(tokenString string) time.Time {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Now().Add(24 * time.Hour)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Now().Add(24 * time.Hour)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(24 * time.Hour)
}
