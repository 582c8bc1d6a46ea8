package domain

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusRented    VehicleStatus = "RENTED"
)

// Vehicle is a car of the rental fleet. Status is a cache recomputed by the
// status refresher and is never consulted when checking availability.
type Vehicle struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Plate     string        `json:"plate"`
	DayRate   *float64      `json:"day_rate,omitempty"`
	Status    VehicleStatus `json:"status"`
	Image     string        `json:"image,omitempty"`
	ImageURL  string        `json:"image_url,omitempty"`
	CreatedOn string        `json:"created_on"`
}

// Ref returns the reference used to look up the vehicle's commitments.
func (v *Vehicle) Ref() VehicleRef {
	return VehicleRef{ID: v.ID, Name: v.Name}
}

// VehicleRef identifies a vehicle for commitment lookups. Rows that carry a
// vehicle id are matched by ID; legacy rows without one are matched by Name.
// ID is zero when the name matches no vehicle of the fleet.
type VehicleRef struct {
	ID   int64
	Name string
}

// IDPtr returns the id to persist on requests and contracts, nil when unknown.
func (r VehicleRef) IDPtr() *int64 {
	if r.ID == 0 {
		return nil
	}
	id := r.ID
	return &id
}
