package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"vesselos/internal/auth"
	"vesselos/internal/firewall"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Allow any origin
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Pass the request to the next handler
		next.ServeHTTP(w, r)
	})
}

func OpenRoutes(port int, validator *firewall.RequestValidator) error {
	router := http.NewServeMux()
	router.HandleFunc("POST /register", registerUser)
	router.HandleFunc("POST /login", loginUser)
	router.Handle("GET /checkLogin", auth.RequireAuth(http.HandlerFunc(checkLogin)))
	router.Handle("POST /changePassword", auth.RequireAuth(http.HandlerFunc(changePassword)))
	router.Handle("GET /user/role", auth.RequireAuth(http.HandlerFunc(getUserRole)))

	router.Handle("GET /vessels", auth.RequireAuth(http.HandlerFunc(listVessels)))
	router.Handle("POST /vessels", auth.IsAdmin(http.HandlerFunc(createVessel)))

	router.Handle("GET /getMaintenanceCount", auth.RequireAuth(http.HandlerFunc(getMaintenanceCount)))
	router.Handle("GET /getMaintenancePage/{page}", auth.RequireAuth(http.HandlerFunc(getMaintenancePage)))
	router.Handle("POST /maintenance", auth.RequireAuth(http.HandlerFunc(createMaintenanceRequest)))
	router.Handle("PUT /maintenance/{id}/status", auth.RequireAuth(http.HandlerFunc(updateMaintenanceStatus)))
	router.Handle("PUT /maintenance/{id}/assign", auth.IsAdmin(http.HandlerFunc(assignMaintenanceRequest)))

	router.Handle("POST /messages", auth.RequireAuth(http.HandlerFunc(sendMessage)))
	router.Handle("GET /messages/inbox/{page}", auth.RequireAuth(http.HandlerFunc(getInboxPage)))
	router.Handle("GET /messages/unreadCount", auth.RequireAuth(http.HandlerFunc(getUnreadCount)))
	router.Handle("POST /messages/{id}/read", auth.RequireAuth(http.HandlerFunc(markMessageRead)))

	router.Handle("GET /reports/fleet", auth.RequireAuth(http.HandlerFunc(getFleetReport)))

	registry := validator.Registry()
	router.Handle("GET /firewall/rules", auth.IsAdmin(getFirewallRules(registry)))
	router.Handle("POST /firewall/allowlist", auth.IsAdmin(changeFirewallRule(registry, (*firewall.Registry).AddAllow)))
	router.Handle("DELETE /firewall/allowlist", auth.IsAdmin(changeFirewallRule(registry, (*firewall.Registry).RemoveAllow)))
	router.Handle("POST /firewall/denylist", auth.IsAdmin(changeFirewallRule(registry, (*firewall.Registry).AddDeny)))
	router.Handle("DELETE /firewall/denylist", auth.IsAdmin(changeFirewallRule(registry, (*firewall.Registry).RemoveDeny)))

	router.Handle("POST /saveSettings", auth.IsAdmin(http.HandlerFunc(saveSettings)))
	router.Handle("GET /global/settings", auth.IsAdmin(http.HandlerFunc(getGlobalSettings)))

	log.Debug("Routes opened")

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: firewall.SecureHeaders(firewall.Protect(validator)(enableCORS(router))),
	}

	log.Infof("Starting vesselos backend on port :%d", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
