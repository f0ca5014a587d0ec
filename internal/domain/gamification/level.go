package gamification

// CalculateLevel maps lifetime points onto the level ladder. Level n
// requires thresholds[n-1] points, and members past the last threshold
// stay at the top level.
func CalculateLevel(thresholds []int, totalPoints int) int {
	level := 1
	for i, required := range thresholds {
		if totalPoints >= required {
			level = i + 1
		} else {
			break
		}
	}

	return level
}

// PointsForNextLevel returns the threshold of the next level, or zero if
// the member already reached the top.
func PointsForNextLevel(thresholds []int, level int) int {
	if level >= len(thresholds) {
		return 0
	}

	return thresholds[level]
}
