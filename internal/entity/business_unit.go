package entity

import "time"

// BusinessUnit is a classification (residential/commercial/builder) that may
// name a default rate sheet used when no client- or community-level sheet
// applies.
type BusinessUnit struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:36"`
	Name               string    `json:"name" gorm:"size:128;not null"`
	DefaultRateSheetID *string   `json:"default_rate_sheet_id,omitempty" gorm:"size:36"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	DefaultRateSheet *RateSheet `json:"default_rate_sheet,omitempty" gorm:"foreignKey:DefaultRateSheetID"`
}

func (BusinessUnit) TableName() string {
	return "business_units"
}
