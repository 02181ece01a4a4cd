package model

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a contact-form submission. Write-once, never updated.
type Inquiry struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:200;not null" json:"email"`
	Phone     *string   `gorm:"size:30" json:"phone,omitempty"`
	VehicleID *int64    `gorm:"index" json:"vehicle_id,omitempty"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`

	// Relations
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}

// TableName specifies the table name for GORM
func (Inquiry) TableName() string {
	return "inquiries"
}
