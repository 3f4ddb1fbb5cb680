package database

import (
	"errors"
	"fmt"

	"vesselos/internal/api/dto"
	"vesselos/internal/domain"

	"gorm.io/gorm"
)

var ErrInvalidStatusTransition = errors.New("invalid maintenance status transition")

func CreateMaintenanceRequest(request *domain.MaintenanceRequest) error {
	return DB.Create(request).Error
}

func GetMaintenanceRequestFromId(requestID uint) (domain.MaintenanceRequest, error) {
	var request domain.MaintenanceRequest
	err := DB.Preload("Vessel").
		Preload("ReportedBy").
		Preload("AssignedTo").
		First(&request, requestID).Error
	return request, err
}

func CountMaintenanceRequests() (int64, error) {
	var count int64
	err := DB.Model(&domain.MaintenanceRequest{}).Count(&count).Error
	return count, err
}

// GetMaintenanceRequestPage returns one page of requests, newest first.
// Pages are 1-based.
func GetMaintenanceRequestPage(page, pageSize int) ([]dto.MaintenanceRequestInfo, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}

	var requests []domain.MaintenanceRequest
	err := DB.Preload("Vessel").
		Preload("ReportedBy").
		Preload("AssignedTo").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	infos := make([]dto.MaintenanceRequestInfo, 0, len(requests))
	for _, request := range requests {
		infos = append(infos, toMaintenanceInfo(request))
	}
	return infos, nil
}

func toMaintenanceInfo(request domain.MaintenanceRequest) dto.MaintenanceRequestInfo {
	info := dto.MaintenanceRequestInfo{
		ID:          request.ID,
		VesselID:    request.VesselID,
		VesselName:  request.Vessel.Name,
		ReportedBy:  request.ReportedBy.Email,
		Title:       request.Title,
		Description: request.Description,
		Priority:    request.Priority,
		Status:      request.Status,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
	}
	if request.AssignedTo != nil {
		info.AssignedTo = request.AssignedTo.Email
	}
	return info
}

// UpdateMaintenanceStatus moves a request to the next workflow state inside a
// transaction so concurrent transitions cannot skip the legality check.
func UpdateMaintenanceStatus(requestID uint, nextStatus string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var request domain.MaintenanceRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			return err
		}

		if !request.CanTransitionTo(nextStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, request.Status, nextStatus)
		}

		return tx.Model(&request).Update("status", nextStatus).Error
	})
}

func AssignMaintenanceRequest(requestID, assigneeID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var assignee domain.User
		if err := tx.First(&assignee, assigneeID).Error; err != nil {
			return err
		}

		return tx.Model(&domain.MaintenanceRequest{}).
			Where("id = ?", requestID).
			Update("assigned_to_id", assigneeID).Error
	})
}
