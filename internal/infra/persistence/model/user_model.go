// Package model holds the GORM table structs, kept apart from the domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Unique index names, used to tell which column a duplicate-key error refers to.
const (
	UsersUsernameIndex = "idx_users_username"
	UsersEmailIndex    = "idx_users_email"
)

// UserModel mirrors the 'users' table. IDs are generated by the service.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username"`
	Email        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []ProductModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
