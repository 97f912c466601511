package weather

import "strings"

// Icon is the display category a condition renders as.
type Icon string

const (
	IconSun     Icon = "sun"
	IconRain    Icon = "rain"
	IconCloud   Icon = "cloud"
	IconSnow    Icon = "snow"
	IconDrizzle Icon = "drizzle"
	IconThunder Icon = "thunder"

	// IconDefault is used for any condition not in conditionIcons.
	IconDefault = IconSun
)

// conditionIcons maps lowercase condition strings to icon categories.
var conditionIcons = map[Condition]Icon{
	ConditionClear:        IconSun,
	ConditionSunny:        IconSun,
	ConditionRain:         IconRain,
	ConditionRainy:        IconRain,
	ConditionCloudy:       IconCloud,
	ConditionClouds:       IconCloud,
	ConditionOvercast:     IconCloud,
	ConditionSnow:         IconSnow,
	ConditionSnowy:        IconSnow,
	ConditionDrizzle:      IconDrizzle,
	ConditionThunderstorm: IconThunder,
	ConditionThunder:      IconThunder,
}

// IconFor classifies a condition. Matching is case-insensitive and the
// function is total: unknown conditions get IconDefault.
func IconFor(c Condition) Icon {
	if icon, ok := conditionIcons[Condition(strings.ToLower(string(c)))]; ok {
		return icon
	}
	return IconDefault
}

// KnownConditions returns every condition with an explicit mapping.
func KnownConditions() []Condition {
	out := make([]Condition, 0, len(conditionIcons))
	for c := range conditionIcons {
		out = append(out, c)
	}
	return out
}
