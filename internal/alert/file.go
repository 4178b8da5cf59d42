package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/plantpulse/plantpulse/pkg/types"
)

// FileSink appends maintenance and supply alerts to a local file as JSON
// lines, one alert per line, so the file can be tailed or shipped to a
// log collector. Writes are serialized; the file is reopened per send so
// external rotation is safe.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink creates a file sink, failing early if the path cannot be
// opened for append.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening alert file: %w", err)
	}
	_ = f.Close()

	return &FileSink{path: path}, nil
}

// Name returns the sink identifier.
func (s *FileSink) Name() string { return "file" }

// Send appends one alert line.
func (s *FileSink) Send(_ context.Context, alert types.Alert) error {
	line, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encoding alert %s: %w", alert.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening alert file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing alert %s: %w", alert.ID, err)
	}
	return nil
}
