package dto

type VesselInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IMONumber string `json:"imo_number"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

type CreateVessel struct {
	Name      string `json:"name"`
	IMONumber string `json:"imo_number"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}
