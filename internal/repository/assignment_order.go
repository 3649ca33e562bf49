package repository

import (
	"context"
	"sort"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
)

// assignmentBefore is the resolution tie-break for a client's price-book
// assignments: default assignments first, then most recent effective date
// with unset dates last, then oldest created first.
func assignmentBefore(a, b *entity.ClientPriceBookAssignment) bool {
	if a.IsDefault != b.IsDefault {
		return a.IsDefault
	}
	switch {
	case a.EffectiveDate == nil && b.EffectiveDate == nil:
	case a.EffectiveDate == nil:
		return false
	case b.EffectiveDate == nil:
		return true
	case !a.EffectiveDate.Equal(*b.EffectiveDate):
		return a.EffectiveDate.After(*b.EffectiveDate)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func sortAssignments(assignments []entity.ClientPriceBookAssignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignmentBefore(&assignments[i], &assignments[j])
	})
}

// listClientAssignments is the one query behind every assignment listing.
// Ordering happens here, in Go, so the tie-break stays in one place.
func listClientAssignments(ctx context.Context, db *gorm.DB, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	var assignments []entity.ClientPriceBookAssignment
	err := db.WithContext(ctx).
		Preload("PriceBook.Items").
		Where("client_id = ?", clientID).
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	sortAssignments(assignments)
	return assignments, nil
}
