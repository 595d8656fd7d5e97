package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/responses"
)

type CaseEventRepository interface {
	Insert(ctx context.Context, event *models.CaseEvent) error
	FindByCaseID(ctx context.Context, caseID string) ([]models.CaseEvent, error)
}

type CaseEventPublisher interface {
	Publish(ctx context.Context, event *models.CaseEvent) error
}

// CaseEventUsecase records committed transitions. Record never fails the
// caller; problems are logged.
type CaseEventUsecase interface {
	Record(ctx context.Context, actor models.Actor, transition string, before, after *models.Case)
	FindByCaseID(ctx context.Context, caseID string) ([]responses.CaseEvent, error)
}
