package model

import (
	"strings"
	"time"
)

// VolunteerStatus is the workflow state of a volunteer application.
// Any status may transition to any other, including itself.
type VolunteerStatus string

const (
	StatusPending   VolunteerStatus = "pending"
	StatusApproved  VolunteerStatus = "approved"
	StatusRejected  VolunteerStatus = "rejected"
	StatusContacted VolunteerStatus = "contacted"
)

// VolunteerStatuses lists every status accepted by the status-update endpoint.
var VolunteerStatuses = []VolunteerStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusContacted,
}

// IsValid reports whether s is one of the enumerated statuses.
func (s VolunteerStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusContacted:
		return true
	}
	return false
}

// StatusList returns the valid statuses as a comma-separated string for
// error messages.
func StatusList() string {
	names := make([]string, len(VolunteerStatuses))
	for i, s := range VolunteerStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Volunteer represents a volunteer application stored in the database
type Volunteer struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	Email     string          `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_volunteers_email"`
	Phone     string          `json:"phone" gorm:"type:varchar(20);not null;uniqueIndex:idx_volunteers_phone"`
	Interest  string          `json:"interest" gorm:"type:varchar(100);not null"`
	Message   *string         `json:"message" gorm:"type:text"`
	Status    VolunteerStatus `json:"status" gorm:"type:varchar(50);default:'pending';index"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt time.Time       `json:"updated_at"`
}
