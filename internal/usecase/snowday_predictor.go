package usecase

import (
	"context"
	"fmt"
	"time"

	"snowday/internal/domain/entity"
	"snowday/internal/domain/repository"
	"snowday/internal/logger"
	"snowday/internal/metrics"

	"github.com/google/uuid"
)

type PredictorConfig struct {
	School      entity.School
	Policy      string
	Recipients  []entity.Recipient
	Subject     string
	TestingMode bool
}

// SnowDayPredictor produces the prediction text served to the page and
// notifies subscribers when a snow day looks likely.
type SnowDayPredictor struct {
	forecasts repository.ForecastProvider
	ai        repository.AIProvider
	judge     repository.SnowDayJudge
	store     repository.PredictionStore
	notifier  repository.Notifier
	cfg       PredictorConfig
	location  *time.Location
	now       func() time.Time
	log       logger.Logger
}

func NewSnowDayPredictor(
	fc repository.ForecastProvider,
	ai repository.AIProvider,
	judge repository.SnowDayJudge,
	store repository.PredictionStore,
	notifier repository.Notifier,
	cfg PredictorConfig,
	log logger.Logger,
) *SnowDayPredictor {
	loc, err := time.LoadLocation(cfg.School.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &SnowDayPredictor{
		forecasts: fc,
		ai:        ai,
		judge:     judge,
		store:     store,
		notifier:  notifier,
		cfg:       cfg,
		location:  loc,
		now:       time.Now,
		log:       log.With(map[string]interface{}{"component": "snowday_predictor"}),
	}
}

func (p *SnowDayPredictor) Run(ctx context.Context) (*entity.PredictionRun, error) {
	run := &entity.PredictionRun{ID: uuid.NewString(), StartedAt: p.now()}
	log := p.log.With(map[string]interface{}{"run_id": run.ID})
	log.Info("prediction run started", nil)

	err := p.run(ctx, run, log)
	run.LatencyMs = p.now().Sub(run.StartedAt).Milliseconds()
	metrics.PredictionRunDuration.Observe(float64(run.LatencyMs) / 1000)
	if err != nil {
		metrics.PredictionRuns.WithLabelValues("failed").Inc()
		log.WithError(err).Error("prediction run failed", nil)
		return nil, err
	}

	metrics.PredictionRuns.WithLabelValues("ok").Inc()
	log.Info("prediction run finished", map[string]interface{}{
		"likely":     run.Likely,
		"notified":   run.Notified,
		"latency_ms": run.LatencyMs,
	})
	return run, nil
}

func (p *SnowDayPredictor) run(ctx context.Context, run *entity.PredictionRun, log logger.Logger) error {
	fc, err := p.forecasts.Forecast(ctx)
	if err != nil {
		return fmt.Errorf("forecast fetch failed: %w", err)
	}
	window, err := RelevantWindow(fc)
	if err != nil {
		return err
	}

	prompt := BuildPredictionPrompt(p.cfg.School, window, p.cfg.Policy, run.StartedAt.In(p.location))
	resp, err := p.ai.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("prediction generation failed: %w", err)
	}
	if resp.Content == "" {
		return entity.ErrEmptyAIResponse
	}
	run.Prediction = resp.Content
	run.Model = resp.Model
	if used, ok := resp.Metadata["fallback_used"].(bool); ok {
		run.FallbackUsed = used
	}

	if err := p.store.Save(ctx, resp.Content); err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}

	likely, err := p.judge.IsLikely(ctx, resp.Content)
	if err != nil {
		// An unreadable verdict only skips notification.
		log.WithError(err).Warn("snow day judge failed", nil)
	}
	run.Likely = likely

	switch {
	case likely:
		log.Info("snow day likely, notifying recipients", map[string]interface{}{"recipients": len(p.cfg.Recipients)})
	case p.cfg.TestingMode:
		log.Info("snow day unlikely, notifying anyway in testing mode", nil)
	default:
		log.Info("snow day unlikely, not notifying", nil)
		return nil
	}

	if p.notifier == nil || len(p.cfg.Recipients) == 0 {
		log.Warn("no notifier or recipients configured", nil)
		return nil
	}
	sent, err := p.notifier.Notify(ctx, p.cfg.Recipients, p.cfg.Subject, resp.Content)
	run.Notified = sent
	if err != nil {
		log.WithError(err).Error("some notifications failed", map[string]interface{}{"sent": sent})
	}
	return nil
}
