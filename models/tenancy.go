package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TenancyStatus is the lifecycle status of a tenancy record.
type TenancyStatus string

const (
	TenancyActive     TenancyStatus = "active"
	TenancyExpired    TenancyStatus = "expired"
	TenancyTerminated TenancyStatus = "terminated"
)

// ReminderRule is one per-event-type diary setting embedded in a tenancy.
// MonthsBefore is the lookback window; zero or absent means the default
// of three months. The rule's target date lives on the tenancy itself
// (lease end, rent review or break date).
type ReminderRule struct {
	Enabled      bool `json:"enabled"`
	MonthsBefore int  `json:"monthsBefore"`
}

// Window returns the effective lookback in months, applying the
// three-month default for an unset value.
func (r ReminderRule) Window() int {
	if r.MonthsBefore <= 0 {
		return 3
	}
	return r.MonthsBefore
}

// TenancyDiarySettings holds the three reminder rules of a tenancy.
// It is stored as a single JSON column.
type TenancyDiarySettings struct {
	LeaseExpiry  ReminderRule `json:"leaseExpiry"`
	RentReview   ReminderRule `json:"rentReview"`
	TenancyBreak ReminderRule `json:"tenancyBreak"`
}

func (s TenancyDiarySettings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *TenancyDiarySettings) Scan(value any) error {
	if value == nil {
		*s = TenancyDiarySettings{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for diary settings column")
	}
}

type Tenancy struct {
	ID              string
	UnitID          string
	TenantName      string
	TenantEmail     string
	TenantPhone     string
	LeaseStartDate  time.Time
	LeaseEndDate    time.Time
	MonthlyRent     float64
	SecurityDeposit float64
	BreakDate       *time.Time
	BreakType       string
	RentReviewDate  *time.Time
	RentReviewType  string
	Notes           string
	DiarySettings   TenancyDiarySettings
	Status          TenancyStatus
	IsArchived      bool
	IsDeleted       bool
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (t *Tenancy) Live() bool {
	return !t.IsArchived && !t.IsDeleted
}
