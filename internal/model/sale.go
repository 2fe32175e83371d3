package model

import "time"

// Season identifies a calendar season derived from a sale date.
type Season string

// Calendar seasons.
const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// SeasonOf maps a date to its calendar season: Mar-May spring, Jun-Aug summer,
// Sep-Nov fall, everything else winter.
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// SaleRecord is a single creator-product transaction. Historical fact;
// never mutated after creation.
type SaleRecord struct {
	ID             string
	CreatorID      string
	ProductID      string
	ProductName    string
	Category       string
	Date           time.Time
	Quantity       int64
	Revenue        float64 // KRW
	Commission     float64 // KRW
	ClickCount     int64
	ConversionRate float64 // percentage
}
