package requests

type CreateCity struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateHospital struct {
	CityName     string `json:"city_name" validate:"required,max=100"`
	HospitalName string `json:"hospital_name" validate:"required,max=255"`
}
