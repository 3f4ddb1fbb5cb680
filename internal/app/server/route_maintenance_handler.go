package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"vesselos/internal/api/dto"
	"vesselos/internal/auth"
	"vesselos/internal/config"
	"vesselos/internal/database"
	"vesselos/internal/domain"
	"vesselos/internal/firewall"
)

func getMaintenanceCount(w http.ResponseWriter, r *http.Request) {
	count, err := database.CountMaintenanceRequests()
	if err != nil {
		writeError(w, "Failed to count maintenance requests", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}

func getMaintenancePage(w http.ResponseWriter, r *http.Request) {
	page, ok := firewall.ValidateNumeric(r.PathValue("page"))
	if !ok || page < 1 {
		writeError(w, "Invalid page", http.StatusBadRequest)
		return
	}

	pageSize := int(config.GetConfig().Maintenance.PageSize)
	if rawPageSize := r.URL.Query().Get("pageSize"); rawPageSize != "" {
		if parsed, parsedOk := firewall.ValidateNumeric(rawPageSize); parsedOk && parsed > 0 {
			pageSize = parsed
		}
	}

	requests, err := database.GetMaintenanceRequestPage(page, pageSize)
	if err != nil {
		writeError(w, "Failed to load maintenance requests", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(requests)
}

func createMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload dto.CreateMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	title := firewall.SanitizeString(strings.TrimSpace(payload.Title), 255)
	if title == "" {
		writeError(w, "Title is required", http.StatusBadRequest)
		return
	}

	priority := payload.Priority
	if priority == "" {
		priority = domain.MaintenancePriorityNormal
	}
	if !domain.ValidMaintenancePriority(priority) {
		writeError(w, "Invalid priority", http.StatusBadRequest)
		return
	}

	if _, err := database.GetVesselFromId(payload.VesselID); err != nil {
		writeError(w, "Vessel not found", http.StatusNotFound)
		return
	}

	request := domain.MaintenanceRequest{
		VesselID:     payload.VesselID,
		ReportedByID: userID,
		Title:        title,
		Description:  firewall.SanitizeString(payload.Description, firewall.DefaultSanitizeLength),
		Priority:     priority,
		Status:       domain.MaintenanceStatusOpen,
	}

	if err := database.CreateMaintenanceRequest(&request); err != nil {
		writeError(w, "Failed to create maintenance request", http.StatusInternalServerError)
		log.Error(err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uint{"id": request.ID})
}

func updateMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := firewall.ValidateNumeric(r.PathValue("id"))
	if !ok || requestID < 1 {
		writeError(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	var payload dto.UpdateMaintenanceStatus
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := database.UpdateMaintenanceStatus(uint(requestID), payload.Status)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrInvalidStatusTransition):
		writeError(w, "Invalid status transition", http.StatusConflict)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, "Maintenance request not found", http.StatusNotFound)
		return
	default:
		writeError(w, "Failed to update maintenance request", http.StatusInternalServerError)
		log.Error(err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Status updated successfully"})
}

func assignMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := firewall.ValidateNumeric(r.PathValue("id"))
	if !ok || requestID < 1 {
		writeError(w, "Invalid request id", http.StatusBadRequest)
		return
	}

	var payload dto.AssignMaintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	err := database.AssignMaintenanceRequest(uint(requestID), payload.AssignedToID)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, "Maintenance request or assignee not found", http.StatusNotFound)
		return
	default:
		writeError(w, "Failed to assign maintenance request", http.StatusInternalServerError)
		log.Error(err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Request assigned successfully"})
}
