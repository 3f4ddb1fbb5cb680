package database

import (
	"time"

	"vesselos/internal/api/dto"
	"vesselos/internal/domain"

	"golang.org/x/sync/singleflight"
)

var fleetReportGroup singleflight.Group

// GetFleetReport aggregates fleet-wide counts. Concurrent callers share one
// computation via singleflight since the report touches several tables.
func GetFleetReport() (dto.FleetReport, error) {
	result, err, _ := fleetReportGroup.Do("fleet_report", func() (interface{}, error) {
		return buildFleetReport()
	})
	if err != nil {
		return dto.FleetReport{}, err
	}
	return result.(dto.FleetReport), nil
}

func buildFleetReport() (dto.FleetReport, error) {
	report := dto.FleetReport{
		RequestsByStatus:    make(map[string]int64),
		RequestsByPriority:  make(map[string]int64),
		OpenRequestsPerShip: make(map[string]int64),
		GeneratedAt:         time.Now(),
	}

	if err := DB.Model(&domain.Vessel{}).Count(&report.TotalVessels).Error; err != nil {
		return report, err
	}
	if err := DB.Model(&domain.User{}).Count(&report.TotalUsers).Error; err != nil {
		return report, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	err := DB.Model(&domain.MaintenanceRequest{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return report, err
	}
	for _, row := range byStatus {
		report.RequestsByStatus[row.Status] = row.Count
	}

	type priorityCount struct {
		Priority string
		Count    int64
	}
	var byPriority []priorityCount
	err = DB.Model(&domain.MaintenanceRequest{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&byPriority).Error
	if err != nil {
		return report, err
	}
	for _, row := range byPriority {
		report.RequestsByPriority[row.Priority] = row.Count
	}

	type vesselCount struct {
		Name  string
		Count int64
	}
	var perShip []vesselCount
	err = DB.Model(&domain.MaintenanceRequest{}).
		Select("vessels.name AS name, COUNT(*) AS count").
		Joins("JOIN vessels ON vessels.id = maintenance_requests.vessel_id").
		Where("maintenance_requests.status = ?", domain.MaintenanceStatusOpen).
		Group("vessels.name").
		Scan(&perShip).Error
	if err != nil {
		return report, err
	}
	for _, row := range perShip {
		report.OpenRequestsPerShip[row.Name] = row.Count
	}

	err = DB.Model(&domain.Message{}).
		Where("read_at IS NULL").
		Count(&report.UnreadMessages).Error
	if err != nil {
		return report, err
	}

	return report, nil
}
