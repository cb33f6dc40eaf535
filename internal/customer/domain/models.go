package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null" json:"name"`
	Email     string            `gorm:"type:text" json:"email,omitempty"`
	Phone     string            `gorm:"type:text" json:"phone,omitempty"`
	Address   string            `gorm:"type:text" json:"address,omitempty"`
	Company   string            `gorm:"type:text" json:"company,omitempty"`
	GSTNumber string            `gorm:"column:gst_number;type:text" json:"gst_number,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
