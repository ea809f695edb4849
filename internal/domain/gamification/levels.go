package gamification

// Level is a threshold-based rank derived from cumulative points.
type Level struct {
	Level          int    `json:"level"`
	Title          string `json:"title"`
	PointsRequired int    `json:"points_required"`
	Color          string `json:"color"`
	Icon           string `json:"icon"`
}

// DefaultLevels returns the level table, ascending and strictly
// increasing in points required. The last entry is the max level.
func DefaultLevels() []Level {
	return []Level{
		{1, "Beginner", 0, "text-gray-600 bg-gray-100", "🌱"},
		{2, "Motivated", 100, "text-green-600 bg-green-100", "💪"},
		{3, "Focused", 300, "text-blue-600 bg-blue-100", "🎯"},
		{4, "Dedicated", 600, "text-purple-600 bg-purple-100", "⭐"},
		{5, "Champion", 1000, "text-yellow-600 bg-yellow-100", "🏆"},
		{6, "Master", 1500, "text-orange-600 bg-orange-100", "💎"},
		{7, "Legend", 2500, "text-red-600 bg-red-100", "👑"},
	}
}

// LevelProgress describes a user's position within the level table.
type LevelProgress struct {
	Current            Level  `json:"current"`
	Next               *Level `json:"next,omitempty"`
	TotalPoints        int    `json:"total_points"`
	PointsIntoLevel    int    `json:"points_into_level"`
	PointsToNextLevel  int    `json:"points_to_next_level"`
	ProgressPercentage int    `json:"progress_percentage"`
}

// LevelForPoints returns the highest level whose threshold totalPoints
// meets. Negative totals are clamped to zero.
func LevelForPoints(levels []Level, totalPoints int) Level {
	if totalPoints < 0 {
		totalPoints = 0
	}
	for i := len(levels) - 1; i >= 0; i-- {
		if totalPoints >= levels[i].PointsRequired {
			return levels[i]
		}
	}
	return levels[0]
}

// ProgressForPoints computes the current level plus progress toward the
// next threshold. At the max level progress is pinned to 100 and
// PointsToNextLevel to 0.
func ProgressForPoints(levels []Level, totalPoints int) LevelProgress {
	if totalPoints < 0 {
		totalPoints = 0
	}

	currentIdx := 0
	for i := len(levels) - 1; i >= 0; i-- {
		if totalPoints >= levels[i].PointsRequired {
			currentIdx = i
			break
		}
	}

	current := levels[currentIdx]
	progress := LevelProgress{
		Current:         current,
		TotalPoints:     totalPoints,
		PointsIntoLevel: totalPoints - current.PointsRequired,
	}

	if currentIdx == len(levels)-1 {
		progress.ProgressPercentage = 100
		return progress
	}

	next := levels[currentIdx+1]
	progress.Next = &next
	progress.PointsToNextLevel = next.PointsRequired - totalPoints

	span := next.PointsRequired - current.PointsRequired
	pct := progress.PointsIntoLevel * 100 / span
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	progress.ProgressPercentage = pct

	return progress
}
