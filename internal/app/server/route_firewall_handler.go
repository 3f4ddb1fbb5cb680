package server

import (
	"encoding/json"
	"net"
	"net/http"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"vesselos/internal/api/dto"
	"vesselos/internal/firewall"
)

func getFirewallRules(registry *firewall.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allow, deny := registry.Snapshot()

		suspicious := registry.Suspicious()
		infos := make([]dto.SuspiciousIPInfo, 0, len(suspicious))
		for ip, record := range suspicious {
			infos = append(infos, dto.SuspiciousIPInfo{
				IP:        ip,
				FirstSeen: record.FirstSeen,
				LastSeen:  record.LastSeen,
				Count:     record.Count,
			})
		}
		sort.Slice(infos, func(i, j int) bool { return infos[i].IP < infos[j].IP })

		json.NewEncoder(w).Encode(dto.FirewallRules{
			Allowlist:  allow,
			Denylist:   deny,
			Suspicious: infos,
		})
	}
}

func changeFirewallRule(registry *firewall.Registry, apply func(*firewall.Registry, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload dto.FirewallRuleChange
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, "Invalid request", http.StatusBadRequest)
			return
		}

		ip := strings.TrimSpace(payload.IP)
		if net.ParseIP(ip) == nil {
			writeError(w, "Invalid IP address", http.StatusBadRequest)
			return
		}

		apply(registry, ip)

		if err := firewall.PublishRuleUpdate(registry); err != nil {
			log.Warn("Could not broadcast firewall rule update", "error", err)
		}

		json.NewEncoder(w).Encode(map[string]string{"message": "Firewall rules updated"})
	}
}
