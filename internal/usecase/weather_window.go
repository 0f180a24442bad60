package usecase

import (
	"fmt"
	"strings"

	"snowday/internal/domain/entity"
)

// Overnight window: evening of day 0 through the morning of day 1.
const (
	eveningStartHour = 19
	morningEndHour   = 8
)

// RelevantWindow extracts the hours that decide whether school opens.
func RelevantWindow(fc *entity.Forecast) (entity.WeatherWindow, error) {
	if fc == nil || len(fc.Days) < 2 {
		return entity.WeatherWindow{}, entity.ErrEmptyForecast
	}

	var w entity.WeatherWindow
	for _, h := range fc.Days[0].Hours {
		if h.Hour >= eveningStartHour && h.Hour < 24 {
			w.Evening = append(w.Evening, h)
		}
	}
	for _, h := range fc.Days[1].Hours {
		if h.Hour >= 0 && h.Hour < morningEndHour {
			w.Morning = append(w.Morning, h)
		}
	}
	if len(fc.Alerts) > 0 {
		alert := fc.Alerts[0]
		w.Alert = &alert
	}
	return w, nil
}

// HourlySummary renders the window as one line per hour.
func HourlySummary(w entity.WeatherWindow) string {
	var sb strings.Builder
	for _, hours := range [][]entity.HourForecast{w.Evening, w.Morning} {
		for _, h := range hours {
			fmt.Fprintf(&sb,
				"Hour %d: Condition: %s, Temp: %.1f°F, Chance of Snow: %d%%, Chance of Rain: %d%%, "+
					"Wind Speed: %.1fMPH, Visibility: %.1f miles, Snowfall: %.1fcm, Humidity: %d%%, "+
					"Cloud Cover: %d%%, Pressure: %.2fin, Feels Like: %.1f°F, Wind Chill: %.1f°F, "+
					"Dew Point: %.1f°F, Gusts: %.1fMPH, UV Index: %.1f\n",
				h.Hour, h.Condition, h.TempF, h.ChanceOfSnow, h.ChanceOfRain,
				h.WindMph, h.VisibilityMiles, h.SnowCm, h.Humidity,
				h.Cloud, h.PressureIn, h.FeelsLikeF, h.WindChillF,
				h.DewPointF, h.GustMph, h.UV)
		}
	}
	return strings.TrimSpace(sb.String())
}
