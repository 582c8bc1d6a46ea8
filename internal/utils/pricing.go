package utils

import "math"

// Quote is the priced duration of a rental.
type Quote struct {
	Days    int      `json:"days"`
	DayRate *float64 `json:"day_rate,omitempty"`
	Total   *float64 `json:"total,omitempty"`
}

// ComputeDuration returns the number of billed days between the two dates:
// the day difference, never less than one. Unreadable dates bill one day.
func ComputeDuration(startDate, endDate string) int {
	iv, err := ParseInterval(startDate, endDate)
	if err != nil {
		return 1
	}
	days := int(math.Round(iv.End.Sub(iv.Start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// ComputeTotal multiplies the day rate by the duration. A vehicle without a
// configured rate has no price, so nil is returned; a zero rate counts as not
// configured. Any other stored rate is priced as is.
func ComputeTotal(dayRate *float64, days int) *float64 {
	if dayRate == nil || *dayRate == 0 {
		return nil
	}
	total := *dayRate * float64(days)
	return &total
}

// QuoteRental prices a rental of the given dates at dayRate.
func QuoteRental(startDate, endDate string, dayRate *float64) Quote {
	days := ComputeDuration(startDate, endDate)
	q := Quote{Days: days, Total: ComputeTotal(dayRate, days)}
	if q.Total != nil {
		rate := *dayRate
		q.DayRate = &rate
	}
	return q
}
