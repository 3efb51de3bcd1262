package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Donmaston09/crts/internal/model"
)

// JSONLSink appends one JSON object per scored query.
type JSONLSink struct {
	file *os.File
	now  func() time.Time
}

// NewJSONLSink opens (or creates) the log file in append mode.
func NewJSONLSink(path string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening jsonl log: %w", err)
	}
	return &JSONLSink{file: f, now: time.Now}, nil
}

func (s *JSONLSink) Log(query string, rec model.CRTSRecord) error {
	line, err := json.Marshal(newRow(query, rec, s.now()))
	if err != nil {
		return fmt.Errorf("encoding jsonl row: %w", err)
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("writing jsonl row: %w", err)
	}
	return nil
}

func (s *JSONLSink) Close() error {
	return s.file.Close()
}
