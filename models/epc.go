package models

import "time"

// EPCRecord is an energy performance certificate attached to a unit.
type EPCRecord struct {
	ID             string
	UnitID         string
	Rating         string
	CertificateURL string
	ValidUntil     *time.Time
	Notes          string
	IsArchived     bool
	IsDeleted      bool
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
