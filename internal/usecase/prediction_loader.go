package usecase

import (
	"context"
	"fmt"

	"snowday/internal/domain/entity"
	"snowday/internal/domain/repository"
	"snowday/internal/logger"
	"snowday/internal/metrics"
	"snowday/internal/page"
)

const (
	PredictionElementID = "prediction"
	FallbackText        = "Prediction currently unavailable."
)

// PredictionLoader fills the prediction element from a text resource. It
// makes one attempt per page load and never retries or caches.
type PredictionLoader struct {
	fetcher  repository.ResourceFetcher
	resource string
	log      logger.Logger
}

func NewPredictionLoader(fetcher repository.ResourceFetcher, resource string, log logger.Logger) *PredictionLoader {
	return &PredictionLoader{
		fetcher:  fetcher,
		resource: resource,
		log:      log.With(map[string]interface{}{"component": "prediction_loader", "resource": resource}),
	}
}

func (l *PredictionLoader) Load(ctx context.Context, doc *page.Document) {
	text, err := l.fetcher.FetchText(ctx, l.resource)
	if err != nil {
		l.log.WithError(err).Error("error fetching the prediction", nil)
		metrics.PredictionLoads.WithLabelValues("fallback").Inc()
		text = FallbackText
	} else {
		metrics.PredictionLoads.WithLabelValues("ok").Inc()
	}

	el := doc.ElementByID(PredictionElementID)
	if el == nil {
		l.log.WithError(fmt.Errorf("%w: %s", entity.ErrElementNotFound, PredictionElementID)).
			Error("prediction element not found", map[string]interface{}{"element_id": PredictionElementID})
		return
	}
	el.SetTextContent(text)
}
