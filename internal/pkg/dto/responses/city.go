package responses

type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Hospital struct {
	ID       int64  `json:"id"`
	CityName string `json:"city_name"`
	Name     string `json:"name"`
}
