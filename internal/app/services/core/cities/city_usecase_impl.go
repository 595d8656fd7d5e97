package cities

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type cityUsecase struct {
	CityRepository  contracts.CityRepository
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

var (
	cityUsecaseInstance contracts.CityUsecase
	onceCityUsecase     sync.Once
)

// NewCityUsecase caches the city to hospitals mapping in redis when a
// redis repository is given; with nil every read goes to the repository.
func NewCityUsecase(
	cityRepository contracts.CityRepository,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.CityUsecase {
	onceCityUsecase.Do(func() {
		cityUsecaseInstance = &cityUsecase{
			CityRepository:  cityRepository,
			RedisRepository: redisRepository,
			Log:             logger,
		}
	})
	return cityUsecaseInstance
}

func (uc *cityUsecase) FindHospitalsByCity(ctx context.Context) (map[string][]string, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("cityUsecase.FindHospitalsByCity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if uc.RedisRepository != nil {
		cached, err := uc.RedisRepository.Get(ctx, constvars.RedisKeyHospitalsByCity)
		if err != nil {
			uc.Log.Warn("cityUsecase.FindHospitalsByCity error reading cache, falling back to repository",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		} else if cached != "" {
			var hospitalsByCity map[string][]string
			if err := json.Unmarshal([]byte(cached), &hospitalsByCity); err == nil {
				uc.Log.Info("cityUsecase.FindHospitalsByCity served from cache",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Int(constvars.LoggingCitiesCountKey, len(hospitalsByCity)),
				)
				return hospitalsByCity, nil
			}
		}
	}

	cities, err := uc.CityRepository.FindAllWithHospitals(ctx)
	if err != nil {
		uc.Log.Error("cityUsecase.FindHospitalsByCity error fetching cities from repository",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	hospitalsByCity := models.HospitalsByCity(cities)

	if uc.RedisRepository != nil {
		err = uc.RedisRepository.Set(ctx, constvars.RedisKeyHospitalsByCity, hospitalsByCity, 0)
		if err != nil {
			uc.Log.Warn("cityUsecase.FindHospitalsByCity error caching hospitals",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("cityUsecase.FindHospitalsByCity succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCitiesCountKey, len(hospitalsByCity)),
	)
	return hospitalsByCity, nil
}

func (uc *cityUsecase) HospitalBelongsToCity(ctx context.Context, cityName, hospitalName string) (bool, error) {
	hospitalsByCity, err := uc.FindHospitalsByCity(ctx)
	if err != nil {
		return false, err
	}
	for _, name := range hospitalsByCity[cityName] {
		if name == hospitalName {
			return true, nil
		}
	}
	return false, nil
}

func (uc *cityUsecase) CreateCity(ctx context.Context, request *requests.CreateCity) (*responses.City, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("cityUsecase.CreateCity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCityNameKey, request.Name),
	)

	cityID, err := uc.CityRepository.CreateCity(ctx, request.Name)
	if err != nil {
		uc.Log.Error("cityUsecase.CreateCity error inserting city",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidateCache(ctx, requestID)

	return &responses.City{ID: cityID, Name: request.Name}, nil
}

func (uc *cityUsecase) CreateHospital(ctx context.Context, request *requests.CreateHospital) (*responses.Hospital, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("cityUsecase.CreateHospital called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCityNameKey, request.CityName),
		zap.String(constvars.LoggingHospitalNameKey, request.HospitalName),
	)

	city, err := uc.CityRepository.FindByName(ctx, request.CityName)
	if err != nil {
		uc.Log.Error("cityUsecase.CreateHospital error fetching city",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if city == nil {
		return nil, exceptions.ErrCityNotFound(nil, request.CityName)
	}

	hospitalID, err := uc.CityRepository.CreateHospital(ctx, city.ID, request.HospitalName)
	if err != nil {
		uc.Log.Error("cityUsecase.CreateHospital error inserting hospital",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	uc.invalidateCache(ctx, requestID)

	return &responses.Hospital{ID: hospitalID, CityName: city.Name, Name: request.HospitalName}, nil
}

func (uc *cityUsecase) invalidateCache(ctx context.Context, requestID string) {
	if uc.RedisRepository == nil {
		return
	}
	err := uc.RedisRepository.Delete(ctx, constvars.RedisKeyHospitalsByCity)
	if err != nil {
		uc.Log.Warn("cityUsecase.invalidateCache error deleting cached hospitals",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
