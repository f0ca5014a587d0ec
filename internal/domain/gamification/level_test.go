package gamification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 12000}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		name        string
		totalPoints int
		want        int
	}{
		{name: "zero points", totalPoints: 0, want: 1},
		{name: "just below level 2", totalPoints: 99, want: 1},
		{name: "exactly level 2", totalPoints: 100, want: 2},
		{name: "between levels", totalPoints: 180, want: 2},
		{name: "exactly level 3", totalPoints: 250, want: 3},
		{name: "exactly top level", totalPoints: 12000, want: 10},
		{name: "beyond top level", totalPoints: 1000000, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CalculateLevel(testThresholds, tt.totalPoints))
		})
	}
}

func TestPointsForNextLevel(t *testing.T) {
	require.Equal(t, 100, PointsForNextLevel(testThresholds, 1))
	require.Equal(t, 250, PointsForNextLevel(testThresholds, 2))
	require.Equal(t, 12000, PointsForNextLevel(testThresholds, 9))
	require.Equal(t, 0, PointsForNextLevel(testThresholds, 10))
}
