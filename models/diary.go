package models

import "time"

// EventType identifies the source rule of a derived diary event.
type EventType string

const (
	EventLeaseExpiry         EventType = "lease_expiry"
	EventRentReview          EventType = "rent_review"
	EventTenancyBreak        EventType = "tenancy_break"
	EventMaintenanceDeadline EventType = "maintenance_deadline"
	EventInsuranceExpiry     EventType = "insurance_expiry"
)

// EventStatus is the user-maintained negotiation status of a diary event.
type EventStatus string

const (
	StatusPending        EventStatus = "pending"
	StatusVacating       EventStatus = "vacating"
	StatusInTalksDirect  EventStatus = "in_talks_directly"
	StatusInNegotiations EventStatus = "in_negotiations"
	StatusInLegals       EventStatus = "in_legals"
)

// DiaryEvent is derived from record data on every computation pass; it
// is never stored as a primary record. Identity is EventID(eventType,
// sourceID), the sole dedup key. Comments, Status, CreatedAt and
// UpdatedAt are the only fields with an independent lifecycle: they
// come from the persisted annotation overlay. Everything else is a
// snapshot of the live records at computation time.
type DiaryEvent struct {
	ID           string      `json:"id"`
	EventType    EventType   `json:"eventType"`
	EventDate    time.Time   `json:"eventDate"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	PropertyID   string      `json:"propertyId"`
	UnitID       string      `json:"unitId,omitempty"`
	TenancyID    string      `json:"tenancyId,omitempty"`
	PropertyName string      `json:"propertyName"`
	UnitNumber   string      `json:"unitNumber,omitempty"`
	TenantName   string      `json:"tenantName,omitempty"`
	MonthlyRent  float64     `json:"monthlyRent,omitempty"`
	Comments     string      `json:"comments"`
	Status       EventStatus `json:"status"`
	IsArchived   bool        `json:"isArchived"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// EventID builds the deterministic composite id of a derived event.
// The same source record and event type always produce the same id.
func EventID(t EventType, sourceID string) string {
	return string(t) + "_" + sourceID
}
