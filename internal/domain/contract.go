package domain

type ContractStatus string

const (
	ContractStatusActive ContractStatus = "ACTIVE"
	// ContractStatusClosed is only ever set by direct administrative edits.
	ContractStatusClosed ContractStatus = "CLOSED"
)

// Renter holds the identity of a driver named on a contract.
type Renter struct {
	Name        string `json:"name"`
	IDDocument  string `json:"id_document,omitempty"`
	License     string `json:"license,omitempty"`
	LicenseYear string `json:"license_year,omitempty"`
}

// Contract is a priced rental agreement ("contrat"). Vehicle category, plate and
// day rate are snapshots taken when the contract is created.
type Contract struct {
	ID           int64          `json:"id"`
	RequestID    *int64         `json:"request_id,omitempty"`
	Renter       Renter         `json:"renter"`
	SecondDriver *Renter        `json:"second_driver,omitempty"`
	VehicleID    *int64         `json:"vehicle_id,omitempty"`
	VehicleName  string         `json:"vehicle_name"`
	Category     string         `json:"category"`
	Plate        string         `json:"plate"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Days         int            `json:"days"`
	DayRate      *float64       `json:"day_rate,omitempty"`
	Total        *float64       `json:"total,omitempty"`
	Status       ContractStatus `json:"status"`
	CreatedOn    string         `json:"created_on"`
}

// ContractDraft is the operator form for a contract written without a request.
type ContractDraft struct {
	Renter       Renter  `json:"renter"`
	SecondDriver *Renter `json:"second_driver,omitempty"`
	VehicleName  string  `json:"vehicle_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

// Confirmation groups the writes of a request confirmation so the store can
// apply them atomically. Contract is nil when the request already has one.
type Confirmation struct {
	RequestID int64
	Vehicle   VehicleRef
	Contract  *Contract
}

// Invoice is the billing view of a request, priced with the vehicle's current
// day rate.
type Invoice struct {
	Number      string   `json:"number"`
	IssuedOn    string   `json:"issued_on"`
	Request     Request  `json:"request"`
	VehicleName string   `json:"vehicle_name"`
	Category    string   `json:"category"`
	Plate       string   `json:"plate"`
	Days        int      `json:"days"`
	DayRate     *float64 `json:"day_rate,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}
