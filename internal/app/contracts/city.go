package contracts

import (
	"context"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/dto/requests"
	"medtour-service/internal/pkg/dto/responses"
)

type CityUsecase interface {
	FindHospitalsByCity(ctx context.Context) (map[string][]string, error)
	HospitalBelongsToCity(ctx context.Context, cityName, hospitalName string) (bool, error)
	CreateCity(ctx context.Context, request *requests.CreateCity) (*responses.City, error)
	CreateHospital(ctx context.Context, request *requests.CreateHospital) (*responses.Hospital, error)
}

type CityRepository interface {
	FindAllWithHospitals(ctx context.Context) ([]models.City, error)
	FindByName(ctx context.Context, cityName string) (*models.City, error)
	CreateCity(ctx context.Context, cityName string) (int64, error)
	CreateHospital(ctx context.Context, cityID int64, hospitalName string) (int64, error)
}
