package entity

import "errors"

// Standard domain errors
var (
	ErrElementNotFound   = errors.New("page element not found")
	ErrResourceStatus    = errors.New("resource responded with a non-success status")
	ErrResourceNotFound  = errors.New("the requested resource was not found")
	ErrRateLimitExceeded = errors.New("rate limit exceeded: too many refresh requests")
	ErrPipelineDisabled  = errors.New("prediction pipeline is not configured")
	ErrEmptyForecast     = errors.New("forecast has no usable days")
	ErrEmptyAIResponse   = errors.New("model returned no content")
	ErrTransientAI       = errors.New("model backend temporarily unavailable")
)
