package dto

import "time"

type FleetReport struct {
	TotalVessels        int64            `json:"total_vessels"`
	TotalUsers          int64            `json:"total_users"`
	RequestsByStatus    map[string]int64 `json:"requests_by_status"`
	RequestsByPriority  map[string]int64 `json:"requests_by_priority"`
	OpenRequestsPerShip map[string]int64 `json:"open_requests_per_ship"`
	UnreadMessages      int64            `json:"unread_messages"`
	GeneratedAt         time.Time        `json:"generated_at"`
}
