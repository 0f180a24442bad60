package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"snowday/internal/domain/entity"
	"snowday/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockForecasts struct{ mock.Mock }

func (m *MockForecasts) Forecast(ctx context.Context) (*entity.Forecast, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Forecast), args.Error(1)
}

type MockJudge struct{ mock.Mock }

func (m *MockJudge) IsLikely(ctx context.Context, prediction string) (bool, error) {
	args := m.Called(ctx, prediction)
	return args.Bool(0), args.Error(1)
}

type MockStore struct{ mock.Mock }

func (m *MockStore) Save(ctx context.Context, prediction string) error {
	return m.Called(ctx, prediction).Error(0)
}

func (m *MockStore) Latest(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, recipients []entity.Recipient, subject, body string) (int, error) {
	args := m.Called(ctx, recipients, subject, body)
	return args.Int(0), args.Error(1)
}

func twoDayForecast() *entity.Forecast {
	day := func(snow int) entity.ForecastDay {
		var d entity.ForecastDay
		for h := 0; h < 24; h++ {
			d.Hours = append(d.Hours, entity.HourForecast{Hour: h, Condition: "Heavy snow", ChanceOfSnow: snow, TempF: 20})
		}
		return d
	}
	return &entity.Forecast{
		Location: "Rockford",
		Days:     []entity.ForecastDay{day(80), day(95)},
		Alerts:   []entity.WeatherAlert{{Event: "Winter Storm Warning", Severity: "Severe"}},
	}
}

type predictorDeps struct {
	forecasts *MockForecasts
	ai        *MockProvider
	judge     *MockJudge
	store     *MockStore
	notifier  *MockNotifier
}

func newPredictor(testingMode bool) (*SnowDayPredictor, predictorDeps) {
	d := predictorDeps{new(MockForecasts), new(MockProvider), new(MockJudge), new(MockStore), new(MockNotifier)}
	cfg := PredictorConfig{
		School:      entity.School{Name: "Rockford Public Schools", County: "Kent", Timezone: "America/Detroit"},
		Recipients:  []entity.Recipient{{Email: "parent@example.com", Name: "Pat"}},
		Subject:     "Snow day prediction",
		TestingMode: testingMode,
	}
	p := NewSnowDayPredictor(d.forecasts, d.ai, d.judge, d.store, d.notifier, cfg, logger.NewNoOpLogger())
	p.now = func() time.Time { return time.Date(2024, time.January, 31, 21, 0, 0, 0, time.UTC) }
	return p, d
}

func TestRunNotifiesWhenLikely(t *testing.T) {
	p, d := newPredictor(false)
	d.forecasts.On("Forecast", mock.Anything).Return(twoDayForecast(), nil)
	d.ai.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return containsAll(prompt, "Rockford Public Schools", "Winter Storm Warning", "Hour 19:", "Hour 7:")
	})).Return(&entity.AIResponse{Content: "90% chance of a snow day!", Model: "gemini"}, nil)
	d.store.On("Save", mock.Anything, "90% chance of a snow day!").Return(nil)
	d.judge.On("IsLikely", mock.Anything, "90% chance of a snow day!").Return(true, nil)
	d.notifier.On("Notify", mock.Anything, mock.Anything, "Snow day prediction", "90% chance of a snow day!").Return(1, nil)

	run, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.True(t, run.Likely)
	assert.Equal(t, 1, run.Notified)
	assert.Equal(t, "gemini", run.Model)
	d.notifier.AssertExpectations(t)
}

func TestRunSkipsNotificationWhenUnlikely(t *testing.T) {
	p, d := newPredictor(false)
	d.forecasts.On("Forecast", mock.Anything).Return(twoDayForecast(), nil)
	d.ai.On("Generate", mock.Anything, mock.Anything).Return(&entity.AIResponse{Content: "10%"}, nil)
	d.store.On("Save", mock.Anything, "10%").Return(nil)
	d.judge.On("IsLikely", mock.Anything, "10%").Return(false, nil)

	run, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, run.Likely)
	assert.Zero(t, run.Notified)
	d.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunNotifiesInTestingMode(t *testing.T) {
	p, d := newPredictor(true)
	d.forecasts.On("Forecast", mock.Anything).Return(twoDayForecast(), nil)
	d.ai.On("Generate", mock.Anything, mock.Anything).Return(&entity.AIResponse{Content: "10%"}, nil)
	d.store.On("Save", mock.Anything, "10%").Return(nil)
	d.judge.On("IsLikely", mock.Anything, "10%").Return(false, errors.New("unparseable"))
	d.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, "10%").Return(1, nil)

	run, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, run.Notified)
}

func TestRunFailsWithoutStoringOnGenerationError(t *testing.T) {
	p, d := newPredictor(false)
	d.forecasts.On("Forecast", mock.Anything).Return(twoDayForecast(), nil)
	d.ai.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("model down"))

	_, err := p.Run(context.Background())

	require.Error(t, err)
	d.store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRunFailsOnShortForecast(t *testing.T) {
	p, d := newPredictor(false)
	d.forecasts.On("Forecast", mock.Anything).Return(&entity.Forecast{Days: []entity.ForecastDay{{}}}, nil)

	_, err := p.Run(context.Background())

	assert.ErrorIs(t, err, entity.ErrEmptyForecast)
}

func TestRelevantWindowBounds(t *testing.T) {
	w, err := RelevantWindow(twoDayForecast())
	require.NoError(t, err)

	require.Len(t, w.Evening, 5)
	assert.Equal(t, 19, w.Evening[0].Hour)
	assert.Equal(t, 23, w.Evening[4].Hour)
	require.Len(t, w.Morning, 8)
	assert.Equal(t, 0, w.Morning[0].Hour)
	assert.Equal(t, 7, w.Morning[7].Hour)
	require.NotNil(t, w.Alert)
	assert.Equal(t, "Winter Storm Warning", w.Alert.Event)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
