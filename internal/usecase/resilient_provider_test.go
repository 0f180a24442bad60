package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"snowday/internal/domain/entity"
	"snowday/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestResilient(primary, fallback *MockProvider) *ResilientProvider {
	r := NewResilientProvider(primary, fallback, time.Second, logger.NewNoOpLogger())
	r.delay = time.Millisecond
	r.maxDelay = 5 * time.Millisecond
	return r
}

func transientErr(detail string) error {
	return fmt.Errorf("%w: %s", entity.ErrTransientAI, detail)
}

func TestResilientRetriesTransientErrors(t *testing.T) {
	primary, fallback := new(MockProvider), new(MockProvider)
	primary.On("Generate", mock.Anything, "p").Return(nil, transientErr("Error 503, Status: UNAVAILABLE")).Once()
	primary.On("Generate", mock.Anything, "p").Return(&entity.AIResponse{Content: "ok"}, nil).Once()

	resp, err := newTestResilient(primary, fallback).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	primary.AssertNumberOfCalls(t, "Generate", 2)
	fallback.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestResilientRetriesDeadlineExceeded(t *testing.T) {
	primary, fallback := new(MockProvider), new(MockProvider)
	primary.On("Generate", mock.Anything, "p").Return(nil, fmt.Errorf("request: %w", context.DeadlineExceeded)).Once()
	primary.On("Generate", mock.Anything, "p").Return(&entity.AIResponse{Content: "ok"}, nil).Once()

	_, err := newTestResilient(primary, fallback).Generate(context.Background(), "p")

	require.NoError(t, err)
	primary.AssertNumberOfCalls(t, "Generate", 2)
}

func TestResilientFallsBackOnPermanentError(t *testing.T) {
	primary, fallback := new(MockProvider), new(MockProvider)
	primary.On("Generate", mock.Anything, "p").Return(nil, errors.New("invalid api key")).Once()
	fallback.On("Generate", mock.Anything, "p").Return(&entity.AIResponse{Content: "plan b"}, nil).Once()

	resp, err := newTestResilient(primary, fallback).Generate(context.Background(), "p")

	require.NoError(t, err)
	assert.Equal(t, "plan b", resp.Content)
	assert.Equal(t, true, resp.Metadata["fallback_used"])
	primary.AssertNumberOfCalls(t, "Generate", 1)
}

func TestResilientDoesNotRetryStatusLookalikes(t *testing.T) {
	primary, fallback := new(MockProvider), new(MockProvider)
	primary.On("Generate", mock.Anything, "p").Return(nil, errors.New("prompt exceeds 500 tokens; status 400")).Once()
	fallback.On("Generate", mock.Anything, "p").Return(&entity.AIResponse{Content: "plan b"}, nil).Once()

	_, err := newTestResilient(primary, fallback).Generate(context.Background(), "p")

	require.NoError(t, err)
	primary.AssertNumberOfCalls(t, "Generate", 1)
	fallback.AssertNumberOfCalls(t, "Generate", 1)
}

func TestResilientExhaustsRetriesThenFails(t *testing.T) {
	primary, fallback := new(MockProvider), new(MockProvider)
	primary.On("Generate", mock.Anything, "p").Return(nil, transientErr("Error 429, Status: RESOURCE_EXHAUSTED"))
	fallback.On("Generate", mock.Anything, "p").Return(nil, transientErr("Error 500"))

	_, err := newTestResilient(primary, fallback).Generate(context.Background(), "p")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "both primary and fallback failed")
	assert.ErrorIs(t, err, entity.ErrTransientAI)
	primary.AssertNumberOfCalls(t, "Generate", 3)
	fallback.AssertNumberOfCalls(t, "Generate", 1)
}

func TestResilientBackoffIsCapped(t *testing.T) {
	r := NewResilientProvider(nil, nil, time.Second, logger.NewNoOpLogger())

	first := r.backoff(1)
	assert.GreaterOrEqual(t, first, 500*time.Millisecond)
	assert.LessOrEqual(t, first, 600*time.Millisecond)

	capped := r.backoff(10)
	assert.GreaterOrEqual(t, capped, 4*time.Second)
	assert.LessOrEqual(t, capped, 4800*time.Millisecond)
}
