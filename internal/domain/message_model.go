package domain

import "time"

type Message struct {
	ID uint `gorm:"primaryKey;autoIncrement"`

	SenderID uint `gorm:"not null;index"`
	Sender   User

	RecipientID uint `gorm:"not null;index"`
	Recipient   User

	Subject string `gorm:"not null;size:255"`
	Body    string `gorm:"type:text"`

	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}
