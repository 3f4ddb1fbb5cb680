package dto

import "time"

type CreateMaintenanceRequest struct {
	VesselID    uint   `json:"vessel_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateMaintenanceStatus struct {
	Status string `json:"status"`
}

type AssignMaintenanceRequest struct {
	AssignedToID uint `json:"assigned_to_id"`
}

type MaintenanceRequestInfo struct {
	ID          uint      `json:"id"`
	VesselID    uint      `json:"vessel_id"`
	VesselName  string    `json:"vessel_name"`
	ReportedBy  string    `json:"reported_by"`
	AssignedTo  string    `json:"assigned_to,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
