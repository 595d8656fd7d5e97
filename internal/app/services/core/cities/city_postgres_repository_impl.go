package cities

import (
	"context"
	"database/sql"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/queries"
	"sync"

	"go.uber.org/zap"
)

type cityPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	cityPostgresRepositoryInstance contracts.CityRepository
	onceCityPostgresRepository     sync.Once
)

func NewCityPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.CityRepository {
	onceCityPostgresRepository.Do(func() {
		instance := &cityPostgresRepository{
			DB:  db,
			Log: logger,
		}
		cityPostgresRepositoryInstance = instance
	})
	return cityPostgresRepositoryInstance
}

func (r *cityPostgresRepository) FindAllWithHospitals(ctx context.Context) ([]models.City, error) {
	rows, err := r.DB.QueryContext(ctx, queries.GetAllCitiesWithHospitals)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	cities := []models.City{}
	indexByID := make(map[int64]int)
	for rows.Next() {
		var (
			cityID       int64
			cityName     string
			hospitalID   sql.NullInt64
			hospitalName sql.NullString
		)
		if err := rows.Scan(&cityID, &cityName, &hospitalID, &hospitalName); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}

		index, ok := indexByID[cityID]
		if !ok {
			cities = append(cities, models.City{ID: cityID, Name: cityName, Hospitals: []models.Hospital{}})
			index = len(cities) - 1
			indexByID[cityID] = index
		}
		if hospitalID.Valid {
			cities[index].Hospitals = append(cities[index].Hospitals, models.Hospital{
				ID:     hospitalID.Int64,
				CityID: cityID,
				Name:   hospitalName.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return cities, nil
}

func (r *cityPostgresRepository) FindByName(ctx context.Context, cityName string) (*models.City, error) {
	var city models.City
	err := r.DB.QueryRowContext(ctx, queries.GetCityByName, cityName).Scan(&city.ID, &city.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &city, nil
}

func (r *cityPostgresRepository) CreateCity(ctx context.Context, cityName string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, queries.InsertCity, cityName).Scan(&id)
	if err != nil {
		return 0, exceptions.ErrPostgresDBInsertData(err)
	}
	return id, nil
}

func (r *cityPostgresRepository) CreateHospital(ctx context.Context, cityID int64, hospitalName string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, queries.InsertHospital, cityID, hospitalName).Scan(&id)
	if err != nil {
		return 0, exceptions.ErrPostgresDBInsertData(err)
	}
	return id, nil
}
