package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsCounts_Percentages(t *testing.T) {
	tests := []struct {
		name              string
		counts            StatsCounts
		expectedPublished string
		expectedRejected  string
	}{
		{
			name:              "three published one rejected",
			counts:            StatsCounts{Published: 3, Rejected: 1},
			expectedPublished: "75.00%",
			expectedRejected:  "25.00%",
		},
		{
			name:              "no data",
			counts:            StatsCounts{},
			expectedPublished: "0.00%",
			expectedRejected:  "0.00%",
		},
		{
			name:              "thirds",
			counts:            StatsCounts{Published: 1, Rejected: 2},
			expectedPublished: "33.33%",
			expectedRejected:  "66.67%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedPublished, tt.counts.PublishedPercent())
			assert.Equal(t, tt.expectedRejected, tt.counts.RejectedPercent())
		})
	}
}
