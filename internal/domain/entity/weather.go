package entity

import "time"

// HourForecast is one hourly slot of a forecast day.
type HourForecast struct {
	Time            time.Time
	Hour            int
	Condition       string
	TempF           float64
	ChanceOfSnow    int
	ChanceOfRain    int
	WindMph         float64
	VisibilityMiles float64
	SnowCm          float64
	Humidity        int
	Cloud           int
	PressureIn      float64
	FeelsLikeF      float64
	WindChillF      float64
	DewPointF       float64
	GustMph         float64
	UV              float64
}

type ForecastDay struct {
	Date  string
	Hours []HourForecast
}

type WeatherAlert struct {
	Event       string
	Severity    string
	Certainty   string
	Urgency     string
	Description string
}

type Forecast struct {
	Location string
	Days     []ForecastDay
	Alerts   []WeatherAlert
}

// WeatherWindow holds the overnight hours that decide a snow day.
type WeatherWindow struct {
	Evening []HourForecast
	Morning []HourForecast
	Alert   *WeatherAlert
}
