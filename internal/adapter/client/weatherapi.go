package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"snowday/internal/domain/entity"
)

// WeatherAPIClient fetches two-day forecasts from weatherapi.com.
type WeatherAPIClient struct {
	baseURL    string
	apiKey     string
	query      string
	httpClient *http.Client
}

func NewWeatherAPIClient(baseURL, apiKey, query string, timeout time.Duration) *WeatherAPIClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &WeatherAPIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		query:      query,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type weatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string        `json:"date"`
			Hour []weatherHour `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []struct {
			Event     string `json:"event"`
			Severity  string `json:"severity"`
			Certainty string `json:"certainty"`
			Urgency   string `json:"urgency"`
			Desc      string `json:"desc"`
		} `json:"alert"`
	} `json:"alerts"`
}

type weatherHour struct {
	Time         string  `json:"time"`
	TempF        float64 `json:"temp_f"`
	ChanceOfSnow int     `json:"chance_of_snow"`
	ChanceOfRain int     `json:"chance_of_rain"`
	WindMph      float64 `json:"wind_mph"`
	VisMiles     float64 `json:"vis_miles"`
	SnowCm       float64 `json:"snow_cm"`
	Humidity     int     `json:"humidity"`
	Cloud        int     `json:"cloud"`
	PressureIn   float64 `json:"pressure_in"`
	FeelsLikeF   float64 `json:"feelslike_f"`
	WindChillF   float64 `json:"windchill_f"`
	DewPointF    float64 `json:"dewpoint_f"`
	GustMph      float64 `json:"gust_mph"`
	UV           float64 `json:"uv"`
	Condition    struct {
		Text string `json:"text"`
	} `json:"condition"`
}

func (c *WeatherAPIClient) Forecast(ctx context.Context) (*entity.Forecast, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", c.query)
	q.Set("days", "2")
	q.Set("aqi", "no")
	q.Set("alerts", "yes")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"forecast.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: weather api %s: %s", entity.ErrResourceStatus, resp.Status, strings.TrimSpace(string(body)))
	}

	var payload weatherAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode forecast: %w", err)
	}
	return payload.toEntity(), nil
}

func (r *weatherAPIResponse) toEntity() *entity.Forecast {
	fc := &entity.Forecast{Location: r.Location.Name}
	for _, d := range r.Forecast.ForecastDay {
		day := entity.ForecastDay{Date: d.Date}
		for _, h := range d.Hour {
			// weatherapi uses local "2006-01-02 15:04" timestamps
			ts, err := time.Parse("2006-01-02 15:04", h.Time)
			if err != nil {
				continue
			}
			day.Hours = append(day.Hours, entity.HourForecast{
				Time:            ts,
				Hour:            ts.Hour(),
				Condition:       h.Condition.Text,
				TempF:           h.TempF,
				ChanceOfSnow:    h.ChanceOfSnow,
				ChanceOfRain:    h.ChanceOfRain,
				WindMph:         h.WindMph,
				VisibilityMiles: h.VisMiles,
				SnowCm:          h.SnowCm,
				Humidity:        h.Humidity,
				Cloud:           h.Cloud,
				PressureIn:      h.PressureIn,
				FeelsLikeF:      h.FeelsLikeF,
				WindChillF:      h.WindChillF,
				DewPointF:       h.DewPointF,
				GustMph:         h.GustMph,
				UV:              h.UV,
			})
		}
		fc.Days = append(fc.Days, day)
	}
	for _, a := range r.Alerts.Alert {
		fc.Alerts = append(fc.Alerts, entity.WeatherAlert{
			Event:       a.Event,
			Severity:    a.Severity,
			Certainty:   a.Certainty,
			Urgency:     a.Urgency,
			Description: a.Desc,
		})
	}
	return fc
}
