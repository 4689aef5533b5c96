package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PropertyIDs is a list of covered property ids stored as a JSON column.
type PropertyIDs []string

func (p PropertyIDs) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PropertyIDs) Scan(value any) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported type for property ids column")
	}
}

type InsurancePolicy struct {
	ID               string
	PropertyIDs      PropertyIDs
	PolicyType       string
	InsuranceCompany string
	BrokerName       string
	PolicyNumber     string
	StartDate        time.Time
	ExpiryDate       time.Time
	AnnualPremium    float64
	SumInsured       float64
	Comments         string
	DiarySettings    DeadlineRule
	IsArchived       bool
	IsDeleted        bool
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p *InsurancePolicy) Live() bool {
	return !p.IsArchived && !p.IsDeleted
}
