package models

type City struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Hospitals []Hospital `json:"hospitals"`
}

type Hospital struct {
	ID     int64  `json:"id"`
	CityID int64  `json:"city_id"`
	Name   string `json:"name"`
}

func (c City) HasHospital(name string) bool {
	for _, hospital := range c.Hospitals {
		if hospital.Name == name {
			return true
		}
	}
	return false
}

// HospitalsByCity is the shape the reference data endpoint returns.
func HospitalsByCity(cities []City) map[string][]string {
	result := make(map[string][]string, len(cities))
	for _, city := range cities {
		names := make([]string, 0, len(city.Hospitals))
		for _, hospital := range city.Hospitals {
			names = append(names, hospital.Name)
		}
		result[city.Name] = names
	}
	return result
}
