package cities

import (
	"context"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"sort"
	"strings"
	"sync"
)

// SeedHospitals is the reference data the migrations load and the
// in-memory store starts with.
var SeedHospitals = map[string][]string{
	"Beijing": {
		"Peking Union Medical College Hospital (PUMCH)",
		"Beijing Jishuitan Hospital",
		"Peking University Third Hospital",
		"Beijing Tiantan Hospital",
	},
	"Shanghai": {
		"Ruijin Hospital (Shanghai Jiao Tong University)",
		"Zhongshan Hospital (Fudan University)",
		"Shanghai Tenth People's Hospital",
		"Renji Hospital",
	},
}

type cityMemoryRepository struct {
	mu             sync.RWMutex
	cities         []models.City
	nextCityID     int64
	nextHospitalID int64
}

func NewCityMemoryRepository(seed map[string][]string) contracts.CityRepository {
	repo := &cityMemoryRepository{}

	names := make([]string, 0, len(seed))
	for name := range seed {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx := context.Background()
	for _, name := range names {
		cityID, _ := repo.CreateCity(ctx, name)
		for _, hospital := range seed[name] {
			repo.CreateHospital(ctx, cityID, hospital)
		}
	}
	return repo
}

func (r *cityMemoryRepository) FindAllWithHospitals(ctx context.Context) ([]models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.City, len(r.cities))
	for i, city := range r.cities {
		result[i] = city
		result[i].Hospitals = append([]models.Hospital{}, city.Hospitals...)
	}
	return result, nil
}

func (r *cityMemoryRepository) FindByName(ctx context.Context, cityName string) (*models.City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, city := range r.cities {
		if strings.EqualFold(city.Name, cityName) {
			found := city
			found.Hospitals = append([]models.Hospital{}, city.Hospitals...)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *cityMemoryRepository) CreateCity(ctx context.Context, cityName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, city := range r.cities {
		if city.Name == cityName {
			return city.ID, nil
		}
	}
	r.nextCityID++
	r.cities = append(r.cities, models.City{ID: r.nextCityID, Name: cityName, Hospitals: []models.Hospital{}})
	return r.nextCityID, nil
}

func (r *cityMemoryRepository) CreateHospital(ctx context.Context, cityID int64, hospitalName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.cities {
		if r.cities[i].ID != cityID {
			continue
		}
		for _, hospital := range r.cities[i].Hospitals {
			if hospital.Name == hospitalName {
				return hospital.ID, nil
			}
		}
		r.nextHospitalID++
		r.cities[i].Hospitals = append(r.cities[i].Hospitals, models.Hospital{ID: r.nextHospitalID, CityID: cityID, Name: hospitalName})
		return r.nextHospitalID, nil
	}
	return 0, nil
}
