package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"vesselos/internal/config"
)

func saveSettings(w http.ResponseWriter, r *http.Request) {
	var newConfig config.Config
	if err := json.NewDecoder(r.Body).Decode(&newConfig); err != nil {
		log.Error("Error decoding request body:", err)
		writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	config.SetConfig(newConfig)

	json.NewEncoder(w).Encode(map[string]string{"message": "Configuration updated successfully"})
}

func getGlobalSettings(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(config.GetConfig())
}
