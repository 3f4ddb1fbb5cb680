package server

import (
	"encoding/json"
	"net/http"

	"vesselos/internal/database"
)

func getFleetReport(w http.ResponseWriter, r *http.Request) {
	report, err := database.GetFleetReport()
	if err != nil {
		writeError(w, "Failed to build fleet report", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(report)
}
