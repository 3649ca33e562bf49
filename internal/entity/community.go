package entity

import "time"

// Community is a builder community/subdivision belonging to a client.
type Community struct {
	ID                  string    `json:"id" gorm:"primaryKey;size:36"`
	Name                string    `json:"name" gorm:"size:256;not null"`
	ClientID            string    `json:"client_id" gorm:"size:36;not null;index"`
	RateSheetOverrideID *string   `json:"rate_sheet_override_id,omitempty" gorm:"size:36"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Client            *Client    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	RateSheetOverride *RateSheet `json:"rate_sheet_override,omitempty" gorm:"foreignKey:RateSheetOverrideID"`
}

func (Community) TableName() string {
	return "communities"
}

// CommunityProductOverride pins a fixed price for one SKU in one community.
// Highest tier of the pricing cascade; one override per (community, sku).
type CommunityProductOverride struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	CommunityID string    `json:"community_id" gorm:"size:36;not null;uniqueIndex:idx_community_sku"`
	SKUID       string    `json:"sku_id" gorm:"size:36;not null;uniqueIndex:idx_community_sku"`
	Price       float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Reason      string    `json:"reason,omitempty" gorm:"size:256"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Community *Community `json:"community,omitempty" gorm:"foreignKey:CommunityID"`
	SKU       *SKU       `json:"sku,omitempty" gorm:"foreignKey:SKUID"`
}

func (CommunityProductOverride) TableName() string {
	return "community_product_overrides"
}
