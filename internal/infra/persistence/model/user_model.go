// Package model defines the GORM persistence models. They mirror the
// database tables and are kept separate from the pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(100);not null"`
	Email             string    `gorm:"type:varchar(150);unique;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Mobile            *string   `gorm:"type:varchar(20)"`
	EmailVerified     bool      `gorm:"not null;default:false"`
	VerificationToken *string   `gorm:"type:varchar(64);index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Profile *ProfileModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
