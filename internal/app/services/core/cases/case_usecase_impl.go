package cases

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
)

type caseUsecase struct {
	CaseRepository   contracts.CaseRepository
	CityUsecase      contracts.CityUsecase
	CaseEventUsecase contracts.CaseEventUsecase
	Engine           *stages.Engine
	Log              *zap.Logger
}

var (
	caseUsecaseInstance contracts.CaseUsecase
	onceCaseUsecase     sync.Once
)

func NewCaseUsecase(
	caseRepository contracts.CaseRepository,
	cityUsecase contracts.CityUsecase,
	caseEventUsecase contracts.CaseEventUsecase,
	engine *stages.Engine,
	logger *zap.Logger,
) contracts.CaseUsecase {
	onceCaseUsecase.Do(func() {
		caseUsecaseInstance = newCaseUsecase(caseRepository, cityUsecase, caseEventUsecase, engine, logger)
	})
	return caseUsecaseInstance
}

func newCaseUsecase(
	caseRepository contracts.CaseRepository,
	cityUsecase contracts.CityUsecase,
	caseEventUsecase contracts.CaseEventUsecase,
	engine *stages.Engine,
	logger *zap.Logger,
) *caseUsecase {
	return &caseUsecase{
		CaseRepository:   caseRepository,
		CityUsecase:      cityUsecase,
		CaseEventUsecase: caseEventUsecase,
		Engine:           engine,
		Log:              logger,
	}
}

func (uc *caseUsecase) SubmitDraft(ctx context.Context, actor models.Actor, request *requests.SubmitCase) (*responses.CaseSubmitted, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("caseUsecase.SubmitDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, request.UserEmail),
	)

	belongs, err := uc.CityUsecase.HospitalBelongsToCity(ctx, request.TargetCity, request.TargetHospital)
	if err != nil {
		uc.Log.Error("caseUsecase.SubmitDraft error checking hospital reference data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !belongs {
		uc.Log.Info("caseUsecase.SubmitDraft hospital is not listed for city",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCityNameKey, request.TargetCity),
			zap.String(constvars.LoggingHospitalNameKey, request.TargetHospital),
		)
		return nil, exceptions.ErrHospitalNotInCity(nil, request.TargetHospital, request.TargetCity)
	}

	var (
		before     *models.Case
		transition stages.Transition
	)
	saved, created, err := uc.CaseRepository.CreateOrReuseDraft(ctx, request.UserEmail, func(current *models.Case) (*models.Case, error) {
		before = current
		if current != nil {
			transition = stages.UpdateDraft{
				Symptoms:       request.Symptoms,
				TargetCity:     request.TargetCity,
				TargetHospital: request.TargetHospital,
			}
		} else {
			transition = stages.CreateDraft{
				UserEmail:      request.UserEmail,
				PatientName:    request.PatientName,
				Symptoms:       request.Symptoms,
				TargetCity:     request.TargetCity,
				TargetHospital: request.TargetHospital,
				PassportURL:    request.PassportURL,
			}
		}
		return uc.Engine.Apply(current, transition, actor)
	})
	if err != nil {
		uc.Log.Error("caseUsecase.SubmitDraft error saving draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.TranslateTransitionError(err)
	}

	uc.CaseEventUsecase.Record(ctx, actor, transition.Name(), before, saved)

	uc.Log.Info("caseUsecase.SubmitDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, saved.ID),
		zap.Bool(constvars.LoggingCreatedKey, created),
	)
	return &responses.CaseSubmitted{
		CaseID: saved.ID,
		Reused: !created,
	}, nil
}

func (uc *caseUsecase) FindByID(ctx context.Context, caseID string) (*responses.Case, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("caseUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
	)

	found, err := uc.CaseRepository.FindByID(ctx, caseID)
	if err != nil {
		uc.Log.Error("caseUsecase.FindByID error fetching case",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if found == nil {
		return nil, exceptions.ErrCaseNotFound(nil, caseID)
	}

	response := found.ConvertIntoResponse()
	return &response, nil
}

func (uc *caseUsecase) FindLatestByEmail(ctx context.Context, email string) (*responses.Case, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("caseUsecase.FindLatestByEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEmailKey, email),
	)

	found, err := uc.CaseRepository.FindLatestByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("caseUsecase.FindLatestByEmail error fetching case",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if found == nil {
		return nil, exceptions.ErrCaseNotFound(nil, email)
	}

	response := found.ConvertIntoResponse()
	return &response, nil
}

// LookupByEmail never fails for an unknown email; it reports NoCase so the
// public lookup cannot be used to tell errors apart from absence.
func (uc *caseUsecase) LookupByEmail(ctx context.Context, email string) (*responses.CaseLookup, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("caseUsecase.LookupByEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	found, err := uc.CaseRepository.FindLatestByEmail(ctx, email)
	if err != nil {
		uc.Log.Error("caseUsecase.LookupByEmail error fetching case",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if found == nil {
		return &responses.CaseLookup{NoCase: true}, nil
	}

	response := found.ConvertIntoLookupResponse()
	return &response, nil
}

func (uc *caseUsecase) AttachCompanion(ctx context.Context, actor models.Actor, caseID string, request *requests.AttachCompanion) (*responses.Case, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("caseUsecase.AttachCompanion called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, caseID),
		zap.String(constvars.LoggingActorKey, actor.Label()),
	)

	transition := stages.AttachCompanion{
		Companion: models.CompanionRequest{
			Contact:  request.Contact,
			Gender:   request.Gender,
			Duration: request.Duration,
		},
	}

	var before *models.Case
	saved, err := uc.CaseRepository.ApplyTransition(ctx, caseID, func(current *models.Case) (*models.Case, error) {
		before = current
		return uc.Engine.Apply(current, transition, actor)
	})
	if err != nil {
		uc.Log.Error("caseUsecase.AttachCompanion transition failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCaseIDKey, caseID),
			zap.Error(err),
		)
		return nil, exceptions.TranslateTransitionError(err)
	}

	uc.CaseEventUsecase.Record(ctx, actor, transition.Name(), before, saved)

	uc.Log.Info("caseUsecase.AttachCompanion succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseIDKey, saved.ID),
		zap.String(constvars.LoggingCaseStatusKey, string(saved.Status)),
	)
	response := saved.ConvertIntoResponse()
	return &response, nil
}

