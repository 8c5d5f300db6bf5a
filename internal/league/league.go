// Package league defines the closed set of supported leagues and their
// per-sport behavioral profiles.
package league

import "strings"

// League identifies a supported sports league.
type League string

const (
	NFL     League = "NFL"
	NBA     League = "NBA"
	MLB     League = "MLB"
	NHL     League = "NHL"
	Soccer  League = "SOCCER"
	Unknown League = "UNKNOWN"
)

// Profile captures the sport-specific constants used across the engine.
// Profiles are resolved once per league instead of branching on league
// strings in every factor module.
type Profile struct {
	// BaseScore is the neutral expected score for one side.
	BaseScore float64
	// HomeAdvantage is the baseline home-field confidence boost in points.
	HomeAdvantage float64
	// ScorePrecision is the number of decimal places in projected scores.
	ScorePrecision int
	// OutdoorWeather reports whether weather meaningfully affects play.
	OutdoorWeather bool
	// PowerCalibration is the ML Power Index league calibration constant.
	PowerCalibration float64
	// MarketEfficiency is the Value Pick Finder market-efficiency constant.
	// Negative values mean the market prices the sport tightly.
	MarketEfficiency float64
	// SupportsDraw reports whether a drawn result is a quotable outcome.
	SupportsDraw bool
}

var profiles = map[League]Profile{
	NFL:    {BaseScore: 22.5, HomeAdvantage: 2.5, OutdoorWeather: true, PowerCalibration: 1, MarketEfficiency: -2},
	NBA:    {BaseScore: 112, HomeAdvantage: 2.0, OutdoorWeather: false, PowerCalibration: 2, MarketEfficiency: -1},
	MLB:    {BaseScore: 4.3, HomeAdvantage: 1.0, OutdoorWeather: true, PowerCalibration: -3, MarketEfficiency: 2},
	NHL:    {BaseScore: 2.9, HomeAdvantage: 1.8, OutdoorWeather: false, PowerCalibration: -2, MarketEfficiency: 3},
	Soccer: {BaseScore: 1.4, HomeAdvantage: 3.0, OutdoorWeather: true, MarketEfficiency: 0, SupportsDraw: true},
}

var defaultProfile = Profile{BaseScore: 50, HomeAdvantage: 2.0}

// Parse maps a free-form league tag onto the closed League set.
// Unrecognized tags resolve to Unknown rather than failing.
func Parse(s string) League {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NFL", "FOOTBALL", "AMERICANFOOTBALL_NFL":
		return NFL
	case "NBA", "BASKETBALL":
		return NBA
	case "MLB", "BASEBALL":
		return MLB
	case "NHL", "HOCKEY", "ICEHOCKEY_NHL":
		return NHL
	case "SOCCER", "EPL", "MLS", "FOOTBALL_ASSOCIATION":
		return Soccer
	default:
		return Unknown
	}
}

// Profile returns the behavioral profile for the league. Unknown leagues
// receive a neutral default profile so the engine can still produce output.
func (l League) Profile() Profile {
	if p, ok := profiles[l]; ok {
		return p
	}
	return defaultProfile
}

// String returns the league tag.
func (l League) String() string {
	return string(l)
}
