package database

import (
	"vesselos/internal/domain"

	"github.com/charmbracelet/log"
)

func GetUserFromId(userID uint) domain.User {
	var user domain.User
	if err := DB.First(&user, userID).Error; err != nil {
		log.Warn("User lookup failed", "user_id", userID, "error", err)
	}
	return user
}

func GetUserByEmail(email string) (domain.User, error) {
	var user domain.User
	err := DB.Where("email = ?", email).First(&user).Error
	return user, err
}

func CountUsers() (int64, error) {
	var count int64
	err := DB.Model(&domain.User{}).Count(&count).Error
	return count, err
}

func CreateUser(user *domain.User) error {
	return DB.Create(user).Error
}

func ChangePassword(userID uint, hashedPassword string) error {
	return DB.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
}
