package usecase

import (
	"hotel-reservation/internal/pkg/jwt"
)

// TokenValidator resolves a bearer token to the user a booking is made for.
type TokenValidator interface {
	ValidateToken(tokenString string) (userID string, err error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (string, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
