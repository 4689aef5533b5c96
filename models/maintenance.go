package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type MaintenanceStatus string

const (
	MaintenanceReported   MaintenanceStatus = "reported"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// DeadlineRule is the diary setting carried by maintenance issues and
// insurance policies: notify DaysBefore days ahead of the target date.
type DeadlineRule struct {
	Enabled    bool `json:"enabled"`
	DaysBefore int  `json:"daysBefore"`
}

// WindowDays returns the effective lookahead in days, applying the
// thirty-day default for an unset value.
func (r DeadlineRule) WindowDays() int {
	if r.DaysBefore <= 0 {
		return 30
	}
	return r.DaysBefore
}

func (r DeadlineRule) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *DeadlineRule) Scan(value any) error {
	if value == nil {
		*r = DeadlineRule{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return errors.New("unsupported type for deadline rule column")
	}
}

type MaintenanceIssue struct {
	ID            string
	PropertyID    string
	UnitID        string
	Title         string
	Description   string
	Status        MaintenanceStatus
	Priority      string
	ReportedDate  time.Time
	Deadline      *time.Time
	CompletedDate *time.Time
	AssignedTo    string
	EstimatedCost float64
	ActualCost    float64
	DiarySettings DeadlineRule
	IsArchived    bool
	IsDeleted     bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *MaintenanceIssue) Live() bool {
	return !m.IsArchived && !m.IsDeleted
}
