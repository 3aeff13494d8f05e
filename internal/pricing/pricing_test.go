package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nftforge/internal/domain"
)

func TestCost(t *testing.T) {
	table := Default()
	tests := []struct {
		op      Operation
		quality domain.Quality
		want    float64
	}{
		{OpJersey, domain.QualityStandard, 0.045},
		{OpJersey, domain.QualityHD, 0.045},
		{OpBadge, domain.QualityStandard, 0.040},
		{OpBadge, domain.QualityHD, 0.080},
		{OpStadium, domain.QualityHD, 0.080},
		{OpStadium, "", 0.040},
		{OpVision, domain.QualityStandard, 0.010},
		{"unknown", domain.QualityHD, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.op)+"/"+string(tt.quality), func(t *testing.T) {
			assert.InDelta(t, tt.want, table.Cost(tt.op, tt.quality), 1e-9)
		})
	}
}

func TestStadiumTotal(t *testing.T) {
	table := Default()
	assert.InDelta(t, 0.090, table.StadiumTotal(domain.QualityHD, true), 1e-9)
	assert.InDelta(t, 0.040, table.StadiumTotal(domain.QualityStandard, false), 1e-9)
}
