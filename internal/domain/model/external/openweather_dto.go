package external

// OpenWeatherForecastResponse represents the 5 day / 3 hour forecast response
type OpenWeatherForecastResponse struct {
	Cod  string              `json:"cod"`
	Cnt  int                 `json:"cnt"`
	List []OpenWeatherItem   `json:"list"`
	City OpenWeatherCityInfo `json:"city"`
}

// OpenWeatherItem is one 3 hour step of the forecast
type OpenWeatherItem struct {
	Dt      int64                  `json:"dt"`
	DtTxt   string                 `json:"dt_txt"`
	Main    OpenWeatherMain        `json:"main"`
	Weather []OpenWeatherCondition `json:"weather"`
	Pop     float64                `json:"pop"`
}

// OpenWeatherMain holds temperature and humidity of a step
type OpenWeatherMain struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity int     `json:"humidity"`
}

// OpenWeatherCondition is a weather label, Main is the categorical group (Rain, Clear, Clouds...)
type OpenWeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// OpenWeatherCityInfo identifies the forecast location
type OpenWeatherCityInfo struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int    `json:"timezone"`
}

// OpenWeatherErrorResponse represents error responses from OpenWeather.
// Cod is a number on some endpoints and a string on others.
type OpenWeatherErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}
