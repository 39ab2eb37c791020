// Package season holds the static identifier tables for the odds site:
// season year to internal season id (seid), (season, week) to event group id
// (egid), and team labels to participant ids (partid). These tables are
// versioned with the code and must be extended when the site mints new ids.
package season

import (
	"strconv"

	"github.com/kdvs/nflodds/internal/pkg/models"
)

var seasonIDs = map[int]int{
	2018: 4494,
	2019: 5703,
	2020: 8582,
	2021: 29178,
	2022: 38109,
	2023: 38292,
	2024: 42499,
	2025: 59654,
}

// Postseason event groups are fixed across seasons.
const (
	egidWildCard   = 28
	egidDivisional = 29
	egidConference = 30
	egidSuperBowl  = 31

	// 2021 expanded the regular season; week 18 got its own event group
	// instead of following the 9+week rule.
	egidWeek18 = 33573
)

// SeasonID resolves a season year to the site's internal season id.
func SeasonID(year int) (int, error) {
	seid, ok := seasonIDs[year]
	if !ok {
		return 0, &models.ConfigurationError{Season: year, Reason: "unknown season"}
	}
	return seid, nil
}

// EventGroupID resolves (season, week) to the site's event group id.
// Weeks are numbered continuously: regular season first (17 weeks through
// 2020, 18 from 2021), then the four postseason rounds.
func EventGroupID(year, week int) (int, error) {
	if _, ok := seasonIDs[year]; !ok {
		return 0, &models.ConfigurationError{Season: year, Week: week, Reason: "unknown season"}
	}

	regular := 17
	if year >= 2021 {
		regular = 18
	}

	switch {
	case week >= 1 && week <= 17:
		return 9 + week, nil
	case week == 18 && year >= 2021:
		return egidWeek18, nil
	case week >= regular+1 && week <= regular+4:
		return []int{egidWildCard, egidDivisional, egidConference, egidSuperBowl}[week-regular-1], nil
	default:
		return 0, &models.ConfigurationError{Season: year, Week: week, Reason: "week outside mapped range"}
	}
}

// WeekLabel is the inverse of EventGroupID for display purposes: it renders
// the label the site uses for an event group ("3", "18", "Wild Card", ...).
func WeekLabel(egid, year int) string {
	switch egid {
	case egidWildCard:
		return "Wild Card"
	case egidDivisional:
		return "Divisional"
	case egidConference:
		return "Conference"
	case egidSuperBowl:
		return "Super Bowl"
	case egidWeek18:
		if year >= 2021 {
			return "18"
		}
	}
	return strconv.Itoa(egid - 9)
}

// Weeks lists every mapped week number for a season, in slate order.
func Weeks(year int) []int {
	regular := 17
	if year >= 2021 {
		regular = 18
	}
	weeks := make([]int, 0, regular+4)
	for w := 1; w <= regular+4; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}
