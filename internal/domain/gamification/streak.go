package gamification

// StreakTier is a named bucket of streak ranges used for display and
// motivation. Index is the tier's position in ascending threshold order.
type StreakTier struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	Emoji         string `json:"emoji"`
	NextThreshold *int   `json:"next_threshold,omitempty"`
}

type streakTierDef struct {
	threshold int
	name      string
	color     string
	emoji     string
}

// Ascending by threshold. The classifier scans from the highest.
var streakTiers = []streakTierDef{
	{0, "Starting", "text-gray-600 bg-gray-100", "🌱"},
	{3, "Building", "text-orange-600 bg-orange-100", "💪"},
	{7, "Consistent", "text-yellow-600 bg-yellow-100", "🔥"},
	{14, "Advanced", "text-green-600 bg-green-100", "🌟"},
	{30, "Expert", "text-blue-600 bg-blue-100", "💎"},
	{50, "Master", "text-indigo-600 bg-indigo-100", "🏆"},
	{100, "Legendary", "text-purple-600 bg-purple-100", "👑"},
}

// TierForStreak classifies a streak count into its tier. Negative input
// is clamped to zero. The top tier has a nil NextThreshold.
func TierForStreak(streak int) StreakTier {
	if streak < 0 {
		streak = 0
	}

	for i := len(streakTiers) - 1; i >= 0; i-- {
		if streak >= streakTiers[i].threshold {
			tier := StreakTier{
				Index: i,
				Name:  streakTiers[i].name,
				Color: streakTiers[i].color,
				Emoji: streakTiers[i].emoji,
			}
			if i < len(streakTiers)-1 {
				next := streakTiers[i+1].threshold
				tier.NextThreshold = &next
			}
			return tier
		}
	}

	// Unreachable: the first tier's threshold is 0.
	return StreakTier{Name: streakTiers[0].name}
}
