package domain

// Tier is a commentary band selected by score percentage.
type Tier struct {
	Name       string
	MinPercent float64
	Message    string
}

// Tiers are ordered from highest to lowest lower bound.
var Tiers = []Tier{
	{Name: "expert", MinPercent: 100, Message: "Perfect score! You clearly know your way around accessibility."},
	{Name: "advanced", MinPercent: 80, Message: "Great job! You have a strong grasp of accessibility fundamentals."},
	{Name: "intermediate", MinPercent: 60, Message: "Good effort. A few areas are worth another look."},
	{Name: "beginner", MinPercent: 40, Message: "You're getting there. Our WCAG guides cover the gaps."},
	{Name: "novice", MinPercent: 0, Message: "Accessibility is a journey. Start with our beginner's guide to WCAG."},
}

// TierFor returns the first tier whose lower bound pct reaches.
func TierFor(pct float64) Tier {
	for _, t := range Tiers {
		if pct >= t.MinPercent {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}
