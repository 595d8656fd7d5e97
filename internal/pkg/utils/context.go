package utils

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
)

func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_ACTOR_KEY, actor)
}

// GetActor falls back to an anonymous patient when no middleware set one.
func GetActor(ctx context.Context) models.Actor {
	if actor, ok := ctx.Value(constvars.CONTEXT_ACTOR_KEY).(models.Actor); ok {
		return actor
	}
	return models.AnonymousPatient()
}
