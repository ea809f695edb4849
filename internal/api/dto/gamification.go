package dto

import "github.com/MurtazaJ53/allure-web-grace/internal/domain/gamification"

// ClaimChallengeResponse reports the outcome of claiming a challenge.
// PointsAwarded is zero when the challenge had already been claimed.
type ClaimChallengeResponse struct {
	Challenge     gamification.Challenge `json:"challenge"`
	PointsAwarded int                    `json:"points_awarded"`
}
