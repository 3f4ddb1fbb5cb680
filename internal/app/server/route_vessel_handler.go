package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"vesselos/internal/api/dto"
	"vesselos/internal/database"
	"vesselos/internal/domain"
	"vesselos/internal/firewall"
)

func listVessels(w http.ResponseWriter, r *http.Request) {
	vessels, err := database.ListVessels()
	if err != nil {
		writeError(w, "Failed to load vessels", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(vessels)
}

func createVessel(w http.ResponseWriter, r *http.Request) {
	var payload dto.CreateVessel
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	name := firewall.SanitizeString(strings.TrimSpace(payload.Name), 255)
	if name == "" {
		writeError(w, "Vessel name is required", http.StatusBadRequest)
		return
	}

	status := payload.Status
	if status == "" {
		status = domain.VesselStatusActive
	}
	switch status {
	case domain.VesselStatusActive, domain.VesselStatusInPort, domain.VesselStatusDryDock:
	default:
		writeError(w, "Invalid vessel status", http.StatusBadRequest)
		return
	}

	vessel := domain.Vessel{
		Name:      name,
		IMONumber: firewall.SanitizeString(strings.TrimSpace(payload.IMONumber), 16),
		Type:      firewall.SanitizeString(strings.TrimSpace(payload.Type), 64),
		Status:    status,
	}

	if err := database.CreateVessel(&vessel); err != nil {
		writeError(w, "Failed to create vessel", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, dto.VesselInfo{
		ID:        vessel.ID,
		Name:      vessel.Name,
		IMONumber: vessel.IMONumber,
		Type:      vessel.Type,
		Status:    vessel.Status,
	})
}
