package database

import (
	"errors"
	"time"

	"vesselos/internal/api/dto"
	"vesselos/internal/domain"
)

var ErrNotMessageRecipient = errors.New("user is not the message recipient")

func CreateMessage(message *domain.Message) error {
	return DB.Create(message).Error
}

// GetInboxPage returns one page of a user's received messages, newest first.
func GetInboxPage(userID uint, page, pageSize int) ([]dto.MessageInfo, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var messages []domain.Message
	err := DB.Preload("Sender").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	infos := make([]dto.MessageInfo, 0, len(messages))
	for _, message := range messages {
		infos = append(infos, dto.MessageInfo{
			ID:        message.ID,
			Sender:    message.Sender.Email,
			Subject:   message.Subject,
			Body:      message.Body,
			ReadAt:    message.ReadAt,
			CreatedAt: message.CreatedAt,
		})
	}
	return infos, nil
}

func CountUnreadMessages(userID uint) (int64, error) {
	var count int64
	err := DB.Model(&domain.Message{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// MarkMessageRead stamps the read time. Only the recipient may mark a
// message; re-marking an already read message keeps the original timestamp.
func MarkMessageRead(userID, messageID uint) error {
	var message domain.Message
	if err := DB.First(&message, messageID).Error; err != nil {
		return err
	}

	if message.RecipientID != userID {
		return ErrNotMessageRecipient
	}
	if message.IsRead() {
		return nil
	}

	now := time.Now()
	return DB.Model(&message).Update("read_at", &now).Error
}
