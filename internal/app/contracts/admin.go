package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/responses"
)

type AdminUsecase interface {
	FindAllCases(ctx context.Context) ([]responses.Case, error)
	FindStaleAuthorizations(ctx context.Context) ([]responses.StaleAuthorization, error)
	ConfirmStage1(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error)
	ConfirmStage2(ctx context.Context, actor models.Actor, caseID, authID string) (*responses.Case, error)
	CaptureStage2(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error)
	VoidStage2(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error)
	ConfirmStage3(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error)
}
