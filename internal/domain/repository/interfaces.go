package repository

import (
	"context"
	"snowday/internal/domain/entity"
)

type AIProvider interface {
	Generate(ctx context.Context, prompt string) (*entity.AIResponse, error)
}

// SnowDayJudge decides whether a prediction calls for notifying subscribers.
type SnowDayJudge interface {
	IsLikely(ctx context.Context, prediction string) (bool, error)
}

type ForecastProvider interface {
	Forecast(ctx context.Context) (*entity.Forecast, error)
}

// ResourceFetcher retrieves a text resource relative to the page's base URL.
type ResourceFetcher interface {
	FetchText(ctx context.Context, path string) (string, error)
}

type PredictionStore interface {
	Save(ctx context.Context, prediction string) error
	Latest(ctx context.Context) (string, error)
}

type RefreshLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, recipients []entity.Recipient, subject, body string) (int, error)
}
