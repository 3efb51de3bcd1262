// Package sink appends scored queries to audit logs. Two formats are
// supported with the same flat schema: CSV for spreadsheets and JSONL
// for dashboards and ingest pipelines. Sinks append, never rewrite; an
// audit log that can be edited in place is not an audit log.
package sink

import (
	"time"

	"github.com/Donmaston09/crts/internal/model"
)

// Sink records one scored query.
type Sink interface {
	Log(query string, rec model.CRTSRecord) error
	Close() error
}

// row is the flat record shared by both formats.
type row struct {
	Timestamp string  `json:"timestamp"`
	Query     string  `json:"query"`
	SF        float64 `json:"sf"`
	CRR       float64 `json:"crr"`
	AR        float64 `json:"ar"`
	GA        float64 `json:"ga"`
	CRTS      float64 `json:"crts"`
	L         float64 `json:"L"`
	Alpha     float64 `json:"alpha"`
	Beta      float64 `json:"beta"`
	Gamma     float64 `json:"gamma"`
	Delta     float64 `json:"delta"`
}

func newRow(query string, rec model.CRTSRecord, now time.Time) row {
	return row{
		Timestamp: now.UTC().Format(time.RFC3339),
		Query:     query,
		SF:        rec.SF,
		CRR:       rec.CRR,
		AR:        rec.AR,
		GA:        rec.GA,
		CRTS:      rec.CRTS,
		L:         rec.L,
		Alpha:     rec.Weights.Alpha,
		Beta:      rec.Weights.Beta,
		Gamma:     rec.Weights.Gamma,
		Delta:     rec.Weights.Delta,
	}
}

// Multi fans one record out to several sinks, stopping at the first
// failure.
type Multi []Sink

func (m Multi) Log(query string, rec model.CRTSRecord) error {
	for _, s := range m {
		if err := s.Log(query, rec); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
