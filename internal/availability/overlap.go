// Package availability decides whether a vehicle is free for a date range and
// what status a vehicle should display on a given day.
package availability

import (
	"fmt"
	"strings"

	"carrental-backend/internal/utils"
)

// DatePolicy says how an interval whose dates cannot be read is treated.
type DatePolicy int

const (
	// FailOpen never lets an unreadable interval block the vehicle.
	FailOpen DatePolicy = iota
	// FailClosed treats an unreadable interval as blocking.
	FailClosed
)

// Policy keeps the two parsing policies apart: one for the commitments already
// stored, one for the candidate interval being checked. They are deliberately
// independent; the defaults favour availability for stored rows and safety for
// the candidate.
type Policy struct {
	Stored    DatePolicy
	Candidate DatePolicy
}

func DefaultPolicy() Policy {
	return Policy{Stored: FailOpen, Candidate: FailClosed}
}

// ParseStoredPolicy maps the config values "ignore" and "block".
func ParseStoredPolicy(s string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return FailOpen, nil
	case "block":
		return FailClosed, nil
	}
	return FailOpen, fmt.Errorf("unknown stored date policy %q (want ignore or block)", s)
}

// ParseCandidatePolicy maps the config values "reject" and "allow".
func ParseCandidatePolicy(s string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return FailClosed, nil
	case "allow":
		return FailOpen, nil
	}
	return FailClosed, fmt.Errorf("unknown candidate date policy %q (want reject or allow)", s)
}

// Overlap reports whether two closed day intervals intersect.
func Overlap(a, b utils.Interval) bool {
	return a.Overlaps(b)
}

// OverlapStored compares the candidate with a stored commitment given as raw
// dates. ok is false when the stored dates cannot be evaluated. The stored
// bounds are compared as written: a reversed row overlaps the candidate when
// its end is not before the candidate start and its start is not after the
// candidate end.
func OverlapStored(candidate utils.Interval, startDate, endDate string) (overlap bool, ok bool) {
	stored, err := utils.ParseInterval(startDate, endDate)
	if err != nil {
		return false, false
	}
	return Overlap(candidate, stored), true
}
