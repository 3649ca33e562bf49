package entity

import "time"

// PriceBook is a named collection of SKUs offered to a client segment.
type PriceBook struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PriceBookItem `json:"items,omitempty" gorm:"foreignKey:PriceBookID"`
}

func (PriceBook) TableName() string {
	return "price_books"
}

// PriceBookItem is SKU membership in a price book.
type PriceBookItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	PriceBookID string    `json:"price_book_id" gorm:"size:36;not null;uniqueIndex:idx_price_book_sku"`
	SKUID       string    `json:"sku_id" gorm:"size:36;not null;uniqueIndex:idx_price_book_sku"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PriceBookItem) TableName() string {
	return "price_book_items"
}

// ClientPriceBookAssignment maps a client to a price book and, optionally,
// the rate sheet governing pricing for SKUs in that book. A client may hold
// several assignments; resolution orders them by is_default then
// effective_date (most recent first).
type ClientPriceBookAssignment struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	ClientID      string     `json:"client_id" gorm:"size:36;not null;index"`
	PriceBookID   string     `json:"price_book_id" gorm:"size:36;not null"`
	RateSheetID   *string    `json:"rate_sheet_id,omitempty" gorm:"size:36"`
	IsDefault     bool       `json:"is_default" gorm:"not null;default:false"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Client    *Client    `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	PriceBook *PriceBook `json:"price_book,omitempty" gorm:"foreignKey:PriceBookID"`
	RateSheet *RateSheet `json:"rate_sheet,omitempty" gorm:"foreignKey:RateSheetID"`
}

func (ClientPriceBookAssignment) TableName() string {
	return "client_price_book_assignments"
}
