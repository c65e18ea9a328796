package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AddressLine1 string    `gorm:"type:varchar(255);not null"`
	AddressLine2 *string   `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(100);not null"`
	State        *string   `gorm:"type:varchar(100)"`
	PostalCode   string    `gorm:"type:varchar(20);not null"`
	Country      string    `gorm:"type:varchar(100);not null;default:SINGAPORE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}

// UserAddressModel mirrors the 'user_addresses' link table carrying the
// per-user default flag. The composite primary key prevents duplicate links.
type UserAddressModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AddressID uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsDefault bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User    *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Address *AddressModel `gorm:"foreignKey:AddressID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserAddressModel) TableName() string {
	return "user_addresses"
}
