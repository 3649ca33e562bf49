package entity

import "time"

// SKU is one purchasable catalog line item (style/height/material combo).
type SKU struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Code      string    `json:"code" gorm:"size:64;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:256;not null"`
	Category  string    `json:"category,omitempty" gorm:"size:64"`
	Unit      string    `json:"unit" gorm:"size:16;not null;default:ft"`
	SellPrice float64   `json:"sell_price" gorm:"type:decimal(12,2);not null;default:0"`
	Cost      float64   `json:"cost" gorm:"type:decimal(12,2);not null;default:0"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SKU) TableName() string {
	return "skus"
}
