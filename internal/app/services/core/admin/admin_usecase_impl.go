package admin

import (
	"context"
	"errors"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

var errActionLockHeld = errors.New("another admin action holds the case lock")

type adminUsecase struct {
	CaseRepository        contracts.CaseRepository
	CaseEventUsecase      contracts.CaseEventUsecase
	PaymentGatewayService contracts.PaymentGatewayService
	LockerService         contracts.LockerService
	Engine                *stages.Engine
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

// NewAdminUsecase accepts a nil locker; concurrent gateway calls for one
// case are then only prevented by the guarded commit.
func NewAdminUsecase(
	caseRepository contracts.CaseRepository,
	caseEventUsecase contracts.CaseEventUsecase,
	paymentGatewayService contracts.PaymentGatewayService,
	lockerService contracts.LockerService,
	engine *stages.Engine,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AdminUsecase {
	return &adminUsecase{
		CaseRepository:        caseRepository,
		CaseEventUsecase:      caseEventUsecase,
		PaymentGatewayService: paymentGatewayService,
		LockerService:         lockerService,
		Engine:                engine,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *adminUsecase) FindAllCases(ctx context.Context) ([]responses.Case, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("adminUsecase.FindAllCases called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	cases, err := uc.CaseRepository.FindAll(ctx)
	if err != nil {
		uc.Log.Error("adminUsecase.FindAllCases error fetching cases",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.Case, len(cases))
	for i := range cases {
		response[i] = cases[i].ConvertIntoResponse()
	}

	uc.Log.Info("adminUsecase.FindAllCases succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCasesCountKey, len(response)),
	)
	return response, nil
}

// FindStaleAuthorizations lists cases whose stage-2 hold is older than the
// configured age. It only reports; nothing is voided automatically.
func (uc *adminUsecase) FindStaleAuthorizations(ctx context.Context) ([]responses.StaleAuthorization, error) {
	requestID := utils.GetRequestID(ctx)
	staleAfterInHours := uc.InternalConfig.Escrow.StaleAuthorizationAfterInHours
	if staleAfterInHours <= 0 {
		return []responses.StaleAuthorization{}, nil
	}

	now := uc.now()
	cutoff := now.Add(-time.Duration(staleAfterInHours) * time.Hour)
	uc.Log.Info("adminUsecase.FindStaleAuthorizations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Time(constvars.LoggingCutoffKey, cutoff),
	)

	cases, err := uc.CaseRepository.FindAuthorizedBefore(ctx, cutoff)
	if err != nil {
		uc.Log.Error("adminUsecase.FindStaleAuthorizations error fetching cases",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	response := make([]responses.StaleAuthorization, len(cases))
	for i := range cases {
		response[i] = responses.StaleAuthorization{
			Case:            cases[i].ConvertIntoResponse(),
			AuthorizedHours: now.Sub(*cases[i].Stage2AuthorizedAt).Hours(),
		}
	}
	return response, nil
}

func (uc *adminUsecase) ConfirmStage1(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return uc.commit(ctx, actor, caseID, stages.ConfirmStage1{})
}

func (uc *adminUsecase) ConfirmStage2(ctx context.Context, actor models.Actor, caseID, authID string) (*responses.Case, error) {
	return uc.commit(ctx, actor, caseID, stages.ConfirmStage2{AuthID: authID})
}

func (uc *adminUsecase) ConfirmStage3(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return uc.commit(ctx, actor, caseID, stages.ConfirmStage3{})
}

func (uc *adminUsecase) CaptureStage2(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return uc.settleWithGateway(ctx, actor, caseID, stages.CaptureStage2{}, uc.PaymentGatewayService.CaptureAuthorization)
}

func (uc *adminUsecase) VoidStage2(ctx context.Context, actor models.Actor, caseID string) (*responses.Case, error) {
	return uc.settleWithGateway(ctx, actor, caseID, stages.VoidStage2{}, uc.PaymentGatewayService.VoidAuthorization)
}

// commit applies one transition under the case store's per-case lock.
func (uc *adminUsecase) commit(ctx context.Context, actor models.Actor, caseID string, transition stages.Transition) (*responses.Case, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("adminUsecase.commit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.String(constvars.LoggingTransitionKey, transition.Name()),
		zap.String(constvars.LoggingActorKey, actor.Label()),
	)

	var before *models.Case
	saved, err := uc.CaseRepository.ApplyTransition(ctx, caseID, func(current *models.Case) (*models.Case, error) {
		before = current
		return uc.Engine.Apply(current, transition, actor)
	})
	if err != nil {
		uc.Log.Info("adminUsecase.commit transition not applied",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.String(constvars.LoggingTransitionKey, transition.Name()),
			zap.Error(err),
		)
		return nil, exceptions.TranslateTransitionError(err)
	}

	uc.CaseEventUsecase.Record(ctx, actor, transition.Name(), before, saved)

	uc.Log.Info("adminUsecase.commit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.String(constvars.LoggingTransitionKey, transition.Name()),
		zap.String(constvars.LoggingCaseStatusKey, string(saved.Status)),
	)
	response := saved.ConvertIntoResponse()
	return &response, nil
}

// settleWithGateway checks the guard, calls the gateway with no case lock
// held, then commits through the guard again. A concurrent action that
// committed in between makes the second guard fail.
func (uc *adminUsecase) settleWithGateway(
	ctx context.Context,
	actor models.Actor,
	caseID string,
	transition stages.Transition,
	gatewayCall func(ctx context.Context, authorizationID string) error,
) (*responses.Case, error) {
	requestID := utils.GetRequestID(ctx)

	release, err := uc.acquireActionLock(ctx, caseID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := uc.CaseRepository.FindByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrCaseNotFound(nil, caseID)
	}

	err = uc.Engine.Check(current, transition, actor)
	if err != nil {
		uc.Log.Info("adminUsecase.settleWithGateway guard rejected before gateway call",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.String(constvars.LoggingTransitionKey, transition.Name()),
			zap.Error(err),
		)
		return nil, exceptions.TranslateTransitionError(err)
	}

	err = gatewayCall(ctx, current.Stage2AuthID)
	if err != nil {
		uc.Log.Error("adminUsecase.settleWithGateway gateway call failed, case unchanged",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.String(constvars.LoggingAuthorizationIDKey, current.Stage2AuthID),
			zap.Error(err),
		)
		return nil, err
	}

	response, err := uc.commit(ctx, actor, caseID, transition)
	if err != nil {
		utils.LogSecurityEvent(uc.Log, "gateway_settled_without_commit", requestID, "high",
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.String(constvars.LoggingTransitionKey, transition.Name()),
			zap.String(constvars.LoggingAuthorizationIDKey, current.Stage2AuthID),
			zap.Error(err),
		)
		return nil, err
	}
	return response, nil
}

func (uc *adminUsecase) acquireActionLock(ctx context.Context, caseID string) (func(), error) {
	if uc.LockerService == nil {
		return func() {}, nil
	}

	key := constvars.RedisKeyCaseAdminActionPrefix + caseID
	ttl := time.Duration(uc.InternalConfig.App.AdminActionLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, key, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrCaseActionInProgress(errActionLockHeld, caseID)
	}

	return func() {
		err := uc.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue)
		if err != nil {
			uc.Log.Warn("adminUsecase.acquireActionLock error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}, nil
}
