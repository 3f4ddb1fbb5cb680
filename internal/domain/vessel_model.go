package domain

import "time"

const (
	VesselStatusActive  = "active"
	VesselStatusInPort  = "in_port"
	VesselStatusDryDock = "dry_dock"
)

type Vessel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;not null;size:255"`
	IMONumber string `gorm:"uniqueIndex;size:16"`
	Type      string `gorm:"size:64"`
	Status    string `gorm:"not null;default:'active';check:status IN ('active', 'in_port', 'dry_dock')"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
