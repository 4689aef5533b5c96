package models

import "time"

// PropertyStatus is the lifecycle status of a property record.
type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
)

type Property struct {
	ID              string
	Name            string
	Address         string
	PropertyType    string
	TotalUnits      int
	OccupiedUnits   int
	Description     string
	PurchasePrice   float64
	CurrentValue    float64
	PurchaseDate    *time.Time
	Tenure          string
	TitleNumber     string
	PropertyManager string
	Status          PropertyStatus
	IsArchived      bool
	IsDeleted       bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Live reports whether the property participates in normal views,
// i.e. it is neither archived nor sitting in the recycle bin.
func (p *Property) Live() bool {
	return !p.IsArchived && !p.IsDeleted
}
