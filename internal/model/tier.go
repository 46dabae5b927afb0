package model

// Tier is a membership level unlocked by cumulative loyalty points. The table
// is static product copy, ordered by ascending PointsRequired.
type Tier struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Tagline        string `json:"tagline"`
	Description    string `json:"description"`
	PointsRequired int64  `json:"pointsRequired"`
}

var Tiers = []Tier{
	{
		ID:             "seed",
		Name:           "Seed",
		Title:          "Sacred Initiate",
		Tagline:        "Every journey begins with a single seed.",
		Description:    "Welcome to the community. Earn points with every order, referral, and daily sign-in.",
		PointsRequired: 0,
	},
	{
		ID:             "root",
		Name:           "Root",
		Title:          "Earth Walker",
		Tagline:        "Grounded and growing stronger.",
		Description:    "You are putting down roots. Unlock early access to retreat registrations.",
		PointsRequired: 100,
	},
	{
		ID:             "bloom",
		Name:           "Bloom",
		Title:          "Radiant Soul",
		Tagline:        "Your practice is in full bloom.",
		Description:    "A dedicated member of the community with priority booking and member pricing.",
		PointsRequired: 500,
	},
	{
		ID:             "divine",
		Name:           "Divine",
		Title:          "Divine Healer",
		Tagline:        "A guiding light for others on the path.",
		Description:    "The highest circle. Personal invitations to private ceremonies and events.",
		PointsRequired: 1000,
	},
}

// TierForPoints returns the highest tier whose threshold is at or below points.
func TierForPoints(points int64) Tier {
	current := Tiers[0]
	for _, t := range Tiers {
		if points >= t.PointsRequired {
			current = t
		}
	}
	return current
}

// NextTierForPoints returns the next tier above points, or nil at the top.
func NextTierForPoints(points int64) *Tier {
	for i := range Tiers {
		if points < Tiers[i].PointsRequired {
			return &Tiers[i]
		}
	}
	return nil
}
