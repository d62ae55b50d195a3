package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyConwayRules(t *testing.T) {
	tests := []struct {
		alive     bool
		neighbors int
		want      bool
	}{
		{true, 0, false},
		{true, 1, false},
		{true, 2, true},
		{true, 3, true},
		{true, 4, false},
		{true, 8, false},
		{false, 0, false},
		{false, 2, false},
		{false, 3, true},
		{false, 4, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("alive=%v/neighbors=%d", tt.alive, tt.neighbors), func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyConwayRules(tt.neighbors, tt.alive))
		})
	}
}
