package usecase

import (
	"context"
	"strings"
	"testing"

	"snowday/internal/domain/entity"
	"snowday/internal/logger"
	"snowday/internal/page"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const hostPage = `<html><body>
<h1 id="date-heading">Snow day prediction for: </h1>
<p id="prediction">Loading...</p>
</body></html>`

func parsePage(t *testing.T, src string) *page.Document {
	t.Helper()
	doc, err := page.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func observedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewZapAdapter(zap.New(core)), logs
}

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchText(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Generate(ctx context.Context, prompt string) (*entity.AIResponse, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AIResponse), args.Error(1)
}
