package utils

import (
	"errors"
	"medtour-service/internal/app/models"

	"github.com/golang-jwt/jwt/v4"
)

// ParseActorJWT verifies an identity provider token and turns its claims
// into an Actor. The admin flag comes only from the role claim.
func ParseActorJWT(tokenString, secret, adminRole string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, errors.New("invalid token")
	}

	subject, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if subject == "" && email == "" {
		return models.Actor{}, errors.New("token carries no subject")
	}

	actor := models.Actor{
		Subject: subject,
		Email:   models.NormalizeEmail(email),
		Role:    models.ActorRolePatient,
	}
	if role != "" && role == adminRole {
		actor.Role = models.ActorRoleAdmin
		actor.IsAdmin = true
	}
	return actor, nil
}
