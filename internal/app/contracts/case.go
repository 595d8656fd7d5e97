package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"time"
)

// CaseMutation receives the current case (nil when none exists) and returns
// the case to persist. Returning an error aborts without writing.
type CaseMutation func(current *models.Case) (*models.Case, error)

type CaseRepository interface {
	// CreateOrReuseDraft runs fn against the newest unpaid draft of email
	// while holding a per-email critical section, then inserts or updates.
	CreateOrReuseDraft(ctx context.Context, email string, fn CaseMutation) (*models.Case, bool, error)
	FindByID(ctx context.Context, caseID string) (*models.Case, error)
	FindLatestUnpaidDraft(ctx context.Context, email string) (*models.Case, error)
	FindLatestByEmail(ctx context.Context, email string) (*models.Case, error)
	FindAll(ctx context.Context) ([]models.Case, error)
	FindAuthorizedBefore(ctx context.Context, cutoff time.Time) ([]models.Case, error)
	// ApplyTransition is the only write path for an existing case. It is
	// serialised per case id.
	ApplyTransition(ctx context.Context, caseID string, fn CaseMutation) (*models.Case, error)
}

type CaseUsecase interface {
	SubmitDraft(ctx context.Context, actor models.Actor, request *requests.SubmitCase) (*responses.CaseSubmitted, error)
	FindByID(ctx context.Context, caseID string) (*responses.Case, error)
	FindLatestByEmail(ctx context.Context, email string) (*responses.Case, error)
	LookupByEmail(ctx context.Context, email string) (*responses.CaseLookup, error)
	AttachCompanion(ctx context.Context, actor models.Actor, caseID string, request *requests.AttachCompanion) (*responses.Case, error)
}
