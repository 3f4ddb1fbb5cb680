package domain

import "time"

const (
	MaintenanceStatusOpen       = "open"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

const (
	MaintenancePriorityLow      = "low"
	MaintenancePriorityNormal   = "normal"
	MaintenancePriorityHigh     = "high"
	MaintenancePriorityCritical = "critical"
)

type MaintenanceRequest struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	VesselID uint `gorm:"not null;index"`
	Vessel   Vessel

	ReportedByID uint `gorm:"not null;index"`
	ReportedBy   User

	AssignedToID *uint
	AssignedTo   *User

	Title       string `gorm:"not null;size:255"`
	Description string `gorm:"type:text"`
	Priority    string `gorm:"not null;default:'normal';check:priority IN ('low', 'normal', 'high', 'critical')"`
	Status      string `gorm:"not null;default:'open';index;check:status IN ('open', 'in_progress', 'completed', 'cancelled')"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// maintenanceTransitions encodes the workflow: requests move forward or get
// cancelled, terminal states never reopen.
var maintenanceTransitions = map[string][]string{
	MaintenanceStatusOpen:       {MaintenanceStatusInProgress, MaintenanceStatusCancelled},
	MaintenanceStatusInProgress: {MaintenanceStatusCompleted, MaintenanceStatusCancelled},
}

func (m *MaintenanceRequest) CanTransitionTo(next string) bool {
	for _, allowed := range maintenanceTransitions[m.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

func ValidMaintenancePriority(priority string) bool {
	switch priority {
	case MaintenancePriorityLow, MaintenancePriorityNormal, MaintenancePriorityHigh, MaintenancePriorityCritical:
		return true
	}
	return false
}
