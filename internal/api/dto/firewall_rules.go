package dto

import "time"

type FirewallRuleChange struct {
	IP string `json:"ip"`
}

type SuspiciousIPInfo struct {
	IP        string    `json:"ip"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	Count     int       `json:"count"`
}

type FirewallRules struct {
	Allowlist  []string           `json:"allowlist"`
	Denylist   []string           `json:"denylist"`
	Suspicious []SuspiciousIPInfo `json:"suspicious"`
}
