package availability

import (
	"carrental-backend/internal/domain"
)

type CommitmentKind string

const (
	KindContract CommitmentKind = "contract"
	KindRequest  CommitmentKind = "request"
)

// Commitment is a date range during which a vehicle is taken, either by an
// active contract or by a confirmed request.
type Commitment struct {
	Kind      CommitmentKind `json:"kind"`
	ID        int64          `json:"id"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
}

func FromContracts(contracts []domain.Contract) []Commitment {
	out := make([]Commitment, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, Commitment{Kind: KindContract, ID: c.ID, StartDate: c.StartDate, EndDate: c.EndDate})
	}
	return out
}

func FromRequests(requests []domain.Request) []Commitment {
	out := make([]Commitment, 0, len(requests))
	for _, r := range requests {
		out = append(out, Commitment{Kind: KindRequest, ID: r.ID, StartDate: r.StartDate, EndDate: r.EndDate})
	}
	return out
}
