package api

import (
	"bytes"
	"errors"

	"snowday/internal/domain/entity"
	"snowday/internal/domain/repository"
	"snowday/internal/localedate"
	"snowday/internal/logger"
	"snowday/internal/metrics"
	"snowday/internal/page"
	"snowday/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// PageHandler renders the host page with the date and prediction filled in.
type PageHandler struct {
	template []byte
	dates    *usecase.DateAnnouncer
	loader   *usecase.PredictionLoader
	log      logger.Logger
}

func NewPageHandler(template []byte, dates *usecase.DateAnnouncer, loader *usecase.PredictionLoader, log logger.Logger) *PageHandler {
	return &PageHandler{template: template, dates: dates, loader: loader, log: log}
}

func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	doc, err := page.Parse(bytes.NewReader(h.template))
	if err != nil {
		h.log.WithError(err).Error("host page template is invalid", nil)
		return c.Status(fiber.StatusInternalServerError).SendString("page unavailable")
	}

	tag := localedate.Match(c.Get(fiber.HeaderAcceptLanguage))
	h.dates.Announce(doc, tag)
	h.loader.Load(c.UserContext(), doc)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		h.log.WithError(err).Error("failed to render host page", nil)
		return c.Status(fiber.StatusInternalServerError).SendString("page unavailable")
	}
	metrics.PageRenders.Inc()

	c.Set(fiber.HeaderContentLanguage, tag.String())
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// PredictionHandler serves the stored prediction and triggers new runs.
type PredictionHandler struct {
	store     repository.PredictionStore
	predictor *usecase.SnowDayPredictor
	limiter   repository.RefreshLimiter
	log       logger.Logger
}

func NewPredictionHandler(store repository.PredictionStore, predictor *usecase.SnowDayPredictor, limiter repository.RefreshLimiter, log logger.Logger) *PredictionHandler {
	return &PredictionHandler{store: store, predictor: predictor, limiter: limiter, log: log}
}

func (h *PredictionHandler) HandlePredictionText(c *fiber.Ctx) error {
	text, err := h.store.Latest(c.UserContext())
	if err != nil {
		if errors.Is(err, entity.ErrResourceNotFound) {
			return c.Status(fiber.StatusNotFound).SendString(err.Error())
		}
		h.log.WithError(err).Error("failed to read prediction", nil)
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}
	c.Type("txt", "utf-8")
	return c.SendString(text)
}

func (h *PredictionHandler) HandleRefresh(c *fiber.Ctx) error {
	if h.predictor == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": entity.ErrPipelineDisabled.Error()})
	}

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			h.log.WithError(err).Error("refresh limiter check failed", nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
		if !allowed {
			metrics.RefreshRejected.Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": entity.ErrRateLimitExceeded.Error()})
		}
	}

	run, err := h.predictor.Run(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "prediction run failed"})
	}
	return c.Status(fiber.StatusOK).JSON(run)
}
