package caseEvents

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/utils"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type caseEventUsecase struct {
	CaseEventRepository contracts.CaseEventRepository
	CaseEventPublisher  contracts.CaseEventPublisher
	Log                 *zap.Logger
}

// NewCaseEventUsecase accepts a nil publisher when no broker is configured.
func NewCaseEventUsecase(
	caseEventRepository contracts.CaseEventRepository,
	caseEventPublisher contracts.CaseEventPublisher,
	logger *zap.Logger,
) contracts.CaseEventUsecase {
	return &caseEventUsecase{
		CaseEventRepository: caseEventRepository,
		CaseEventPublisher:  caseEventPublisher,
		Log:                 logger,
	}
}

func (uc *caseEventUsecase) Record(ctx context.Context, actor models.Actor, transition string, before, after *models.Case) {
	if after == nil {
		return
	}
	requestID := utils.GetRequestID(ctx)

	event := &models.CaseEvent{
		ID:         uuid.NewString(),
		CaseID:     after.ID,
		Transition: transition,
		Actor:      actor.Label(),
		ActorRole:  actor.Role,
		ToStatus:   string(after.Status),
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
	if before != nil {
		event.FromStatus = string(before.Status)
	}

	utils.LogBusinessEvent(uc.Log, "case_transition_committed", requestID,
		zap.String(constvars.LoggingCaseIDKey, event.CaseID),
		zap.String(constvars.LoggingTransitionKey, transition),
		zap.String(constvars.LoggingActorKey, event.Actor),
		zap.String(constvars.LoggingCaseStatusKey, event.ToStatus),
	)

	// The transition is already committed; failures below only lose history.
	err := uc.CaseEventRepository.Insert(ctx, event)
	if err != nil {
		uc.Log.Error("caseEventUsecase.Record error storing case event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, event.CaseID),
			zap.Error(err),
		)
	}

	if uc.CaseEventPublisher == nil {
		return
	}
	err = uc.CaseEventPublisher.Publish(ctx, event)
	if err != nil {
		uc.Log.Error("caseEventUsecase.Record error publishing case event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, event.CaseID),
			zap.Error(err),
		)
	}
}

func (uc *caseEventUsecase) FindByCaseID(ctx context.Context, caseID string) ([]responses.CaseEvent, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("caseEventUsecase.FindByCaseID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
	)

	events, err := uc.CaseEventRepository.FindByCaseID(ctx, caseID)
	if err != nil {
		uc.Log.Error("caseEventUsecase.FindByCaseID error fetching events",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.CaseEvent, len(events))
	for i, event := range events {
		response[i] = event.ConvertIntoResponse()
	}
	return response, nil
}
