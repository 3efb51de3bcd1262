package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Donmaston09/crts/internal/model"
)

var csvHeader = []string{
	"timestamp", "query", "sf", "crr", "ar", "ga", "crts", "L",
	"alpha", "beta", "gamma", "delta",
}

// CSVSink appends score rows to a CSV file, writing the header only when
// the file starts empty.
type CSVSink struct {
	file   *os.File
	writer *csv.Writer
	now    func() time.Time
}

// NewCSVSink opens (or creates) the log file in append mode.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening csv log: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening csv log: %w", err)
	}

	s := &CSVSink{file: f, writer: csv.NewWriter(f), now: time.Now}
	if info.Size() == 0 {
		if err := s.writer.Write(csvHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing csv header: %w", err)
		}
	}
	return s, nil
}

func (s *CSVSink) Log(query string, rec model.CRTSRecord) error {
	r := newRow(query, rec, s.now())
	record := []string{
		r.Timestamp, r.Query,
		ftoa(r.SF), ftoa(r.CRR), ftoa(r.AR), ftoa(r.GA), ftoa(r.CRTS), ftoa(r.L),
		ftoa(r.Alpha), ftoa(r.Beta), ftoa(r.Gamma), ftoa(r.Delta),
	}
	if err := s.writer.Write(record); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}
	s.writer.Flush()
	return s.writer.Error()
}

func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
