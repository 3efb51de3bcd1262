package model

// Weights are the CRTS component weights. They are passed explicitly
// through every call so the aggregator stays referentially transparent.
type Weights struct {
	Alpha float64 `json:"alpha" yaml:"alpha" mapstructure:"alpha"` // Source Fidelity
	Beta  float64 `json:"beta" yaml:"beta" mapstructure:"beta"`    // Conflict Reporting Rate
	Gamma float64 `json:"gamma" yaml:"gamma" mapstructure:"gamma"` // Audit Responsiveness
	Delta float64 `json:"delta" yaml:"delta" mapstructure:"delta"` // Guideline Alignment
}

// DefaultWeights is the published 0.30/0.30/0.20/0.20 split.
func DefaultWeights() Weights {
	return Weights{Alpha: 0.30, Beta: 0.30, Gamma: 0.20, Delta: 0.20}
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.Alpha + w.Beta + w.Gamma + w.Delta
}

// Normalised rescales the weights to sum to 1, falling back to the
// defaults when the supplied mass is zero or negative.
func (w Weights) Normalised() Weights {
	total := w.Sum()
	if total <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Alpha: w.Alpha / total,
		Beta:  w.Beta / total,
		Gamma: w.Gamma / total,
		Delta: w.Delta / total,
	}
}

// CRTSRecord is the composite transparency score with every input an
// auditor needs to re-derive it. Components and the composite are rounded
// to two decimals; L and the normalised weights are carried verbatim
// because the score is meaningless without them.
type CRTSRecord struct {
	SF      float64 `json:"sf"`      // Source Fidelity
	CRR     float64 `json:"crr"`     // Conflict Reporting Rate
	AR      float64 `json:"ar"`      // Audit Responsiveness (AR*)
	GA      float64 `json:"ga"`      // Guideline Alignment
	L       float64 `json:"L"`       // Audit latency proxy, seconds
	Weights Weights `json:"weights"` // Normalised weights actually applied
	CRTS    float64 `json:"crts"`    // Composite score
}
