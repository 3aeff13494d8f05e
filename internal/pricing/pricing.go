// Package pricing centralises the per-call cost estimates reported to clients.
package pricing

import "nftforge/internal/domain"

// Operation identifies a billable upstream call.
type Operation string

const (
	OpJersey  Operation = "jersey"
	OpBadge   Operation = "badge"
	OpStadium Operation = "stadium"
	OpVision  Operation = "vision"
)

// Table maps operations to USD cost per call, split by quality.
type Table struct {
	Standard map[Operation]float64
	HD       map[Operation]float64
}

// Default returns the provider list prices the service reports.
func Default() Table {
	return Table{
		Standard: map[Operation]float64{
			OpJersey:  0.045,
			OpBadge:   0.040,
			OpStadium: 0.040,
			OpVision:  0.010,
		},
		HD: map[Operation]float64{
			OpJersey:  0.045,
			OpBadge:   0.080,
			OpStadium: 0.080,
			OpVision:  0.010,
		},
	}
}

// Cost returns the price of one op call at quality. Unknown qualities are
// priced as standard.
func (t Table) Cost(op Operation, quality domain.Quality) float64 {
	if quality == domain.QualityHD {
		if v, ok := t.HD[op]; ok {
			return v
		}
	}
	return t.Standard[op]
}

// StadiumTotal is the image cost plus the vision cost when analysis ran.
func (t Table) StadiumTotal(quality domain.Quality, analysed bool) float64 {
	total := t.Cost(OpStadium, quality)
	if analysed {
		total += t.Cost(OpVision, quality)
	}
	return total
}
