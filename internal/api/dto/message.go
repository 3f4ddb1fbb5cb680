package dto

import "time"

type CreateMessage struct {
	RecipientID uint   `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

type MessageInfo struct {
	ID        uint       `json:"id"`
	Sender    string     `json:"sender"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
