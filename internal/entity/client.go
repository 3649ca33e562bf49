package entity

import "time"

// Client is a customer account (builder, HOA, commercial, residential).
type Client struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Name           string    `json:"name" gorm:"size:256;not null"`
	BusinessUnitID *string   `json:"business_unit_id,omitempty" gorm:"size:36;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}
