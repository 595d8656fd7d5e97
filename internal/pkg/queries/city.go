package queries

const (
	GetAllCitiesWithHospitals = `
		SELECT c.id, c.name, h.id, h.name
		FROM dim_cities c
		LEFT JOIN dim_hospitals h ON h.city_id = c.id
		ORDER BY c.name, h.name
	`

	GetCityByName = `
		SELECT id, name
		FROM dim_cities
		WHERE lower(name) = lower($1)
	`

	InsertCity = `
		INSERT INTO dim_cities (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`

	InsertHospital = `
		INSERT INTO dim_hospitals (city_id, name)
		VALUES ($1, $2)
		ON CONFLICT (city_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
)
