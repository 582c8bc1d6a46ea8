package domain

import "strings"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// ParseRequestStatus accepts the status names case-insensitively.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	st := RequestStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusConfirmed, RequestStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a request in status s may be moved to next.
// Confirmed and Cancelled are terminal; setting the current status again is
// allowed so that a repeated confirmation stays idempotent.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s == next {
		return true
	}
	return s == RequestStatusPending
}

// Request is a booking submitted by a customer ("demande").
// Dates are stored as entered (YYYY-MM-DD), without normalization.
type Request struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	City        string        `json:"city"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	VehicleID   *int64        `json:"vehicle_id,omitempty"`
	VehicleName string        `json:"vehicle_name"`
	Notes       string        `json:"notes"`
	Status      RequestStatus `json:"status"`
	CreatedOn   string        `json:"created_on"`
}

// RequestDraft carries the customer form before validation.
type RequestDraft struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	City        string `json:"city"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	VehicleName string `json:"vehicle"`
	Notes       string `json:"notes"`
}

// Trim strips surrounding whitespace from every field.
func (d RequestDraft) Trim() RequestDraft {
	return RequestDraft{
		Name:        strings.TrimSpace(d.Name),
		Phone:       strings.TrimSpace(d.Phone),
		Email:       strings.TrimSpace(d.Email),
		City:        strings.TrimSpace(d.City),
		StartDate:   strings.TrimSpace(d.StartDate),
		EndDate:     strings.TrimSpace(d.EndDate),
		VehicleName: strings.TrimSpace(d.VehicleName),
		Notes:       strings.TrimSpace(d.Notes),
	}
}

// RequestFilter narrows the admin listing. Empty fields are ignored.
type RequestFilter struct {
	Client  string // substring of the requester name
	Vehicle string // substring of the vehicle name
	Date    string // YYYY-MM-DD contained in [start, end]
}
