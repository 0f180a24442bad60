package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"snowday/internal/domain/entity"

	"github.com/spf13/afero"
)

const (
	PredictionFile = "prediction.txt"
	HistoryFile    = "historical_predictions.txt"
)

// FileStore keeps the latest prediction and an append-only history.
type FileStore struct {
	fs  afero.Fs
	dir string
	now func() time.Time
	mu  sync.Mutex
}

func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return &FileStore{fs: fs, dir: dir, now: time.Now}, nil
}

func (s *FileStore) Save(ctx context.Context, prediction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := filepath.Join(s.dir, PredictionFile+".tmp")
	if err := afero.WriteFile(s.fs, tmp, []byte(prediction), 0o644); err != nil {
		return fmt.Errorf("write prediction: %w", err)
	}
	if err := s.fs.Rename(tmp, filepath.Join(s.dir, PredictionFile)); err != nil {
		return fmt.Errorf("replace prediction: %w", err)
	}

	f, err := s.fs.OpenFile(filepath.Join(s.dir, HistoryFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "[%s] %s\n", s.now().Format(time.RFC3339), prediction); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *FileStore) Latest(ctx context.Context) (string, error) {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, PredictionFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", entity.ErrResourceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read prediction: %w", err)
	}
	return string(data), nil
}

// ReadPolicy loads the snow-day policy text; an empty path yields "".
func ReadPolicy(fs afero.Fs, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("read snow day policy: %w", err)
	}
	return string(data), nil
}
