package models

import "time"

// UnitStatus tracks whether a unit currently has an active tenancy.
type UnitStatus string

const (
	UnitVacant   UnitStatus = "vacant"
	UnitOccupied UnitStatus = "occupied"
)

type Unit struct {
	ID          string
	PropertyID  string
	UnitNumber  string
	FloorNumber int
	UnitType    string
	SizeSqft    float64
	RentAmount  float64
	EPCRating   string
	Description string
	Status      UnitStatus
	IsArchived  bool
	IsDeleted   bool
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u *Unit) Live() bool {
	return !u.IsArchived && !u.IsDeleted
}
