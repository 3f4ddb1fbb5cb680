package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"vesselos/internal/api/dto"
	"vesselos/internal/auth"
	"vesselos/internal/config"
	"vesselos/internal/database"
	"vesselos/internal/domain"
	"vesselos/internal/firewall"
)

func sendMessage(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload dto.CreateMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	subject := firewall.SanitizeString(strings.TrimSpace(payload.Subject), 255)
	if subject == "" {
		writeError(w, "Subject is required", http.StatusBadRequest)
		return
	}

	maxBody := int(config.GetConfig().Messaging.MaxBodyChars)
	if maxBody == 0 {
		maxBody = firewall.DefaultSanitizeLength
	}

	recipient := database.GetUserFromId(payload.RecipientID)
	if recipient.ID == 0 {
		writeError(w, "Recipient not found", http.StatusNotFound)
		return
	}

	message := domain.Message{
		SenderID:    userID,
		RecipientID: recipient.ID,
		Subject:     subject,
		Body:        firewall.SanitizeString(payload.Body, maxBody),
	}

	if err := database.CreateMessage(&message); err != nil {
		writeError(w, "Failed to send message", http.StatusInternalServerError)
		log.Error(err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uint{"id": message.ID})
}

func getInboxPage(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, ok := firewall.ValidateNumeric(r.PathValue("page"))
	if !ok || page < 1 {
		writeError(w, "Invalid page", http.StatusBadRequest)
		return
	}

	pageSize := int(config.GetConfig().Messaging.PageSize)

	inbox, err := database.GetInboxPage(userID, page, pageSize)
	if err != nil {
		writeError(w, "Failed to load inbox", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(inbox)
}

func getUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := database.CountUnreadMessages(userID)
	if err != nil {
		writeError(w, "Failed to count unread messages", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}

func markMessageRead(w http.ResponseWriter, r *http.Request) {
	userID, userErr := auth.GetUserIDFromRequest(r)
	if userErr != nil {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messageID, ok := firewall.ValidateNumeric(r.PathValue("id"))
	if !ok || messageID < 1 {
		writeError(w, "Invalid message id", http.StatusBadRequest)
		return
	}

	err := database.MarkMessageRead(userID, uint(messageID))
	switch {
	case err == nil:
	case errors.Is(err, database.ErrNotMessageRecipient):
		writeError(w, "Forbidden", http.StatusForbidden)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, "Message not found", http.StatusNotFound)
		return
	default:
		writeError(w, "Failed to mark message as read", http.StatusInternalServerError)
		log.Error(err)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "Message marked as read"})
}
