package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultForfeitScore(t *testing.T) {
	tests := []struct {
		seriesLength int
		want         int
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{5, 3},
		{7, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultForfeitScore(tt.seriesLength), "series length %d", tt.seriesLength)
	}
}
