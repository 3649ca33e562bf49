package repository

import (
	"context"
	"errors"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriceBookRepository struct {
	db *gorm.DB
}

func NewPriceBookRepository(db *gorm.DB) *PriceBookRepository {
	return &PriceBookRepository{db: db}
}

func (r *PriceBookRepository) FindByID(ctx context.Context, id string) (*entity.PriceBook, error) {
	var book entity.PriceBook
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *PriceBookRepository) List(ctx context.Context) ([]entity.PriceBook, error) {
	var books []entity.PriceBook
	if err := r.db.WithContext(ctx).Order("name").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PriceBookRepository) Create(ctx context.Context, book *entity.PriceBook) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *PriceBookRepository) AddItem(ctx context.Context, item *entity.PriceBookItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "price_book_id"}, {Name: "sku_id"}},
			DoNothing: true,
		}).
		Create(item).Error
}

func (r *PriceBookRepository) RemoveItem(ctx context.Context, bookID, skuID string) error {
	res := r.db.WithContext(ctx).
		Where("price_book_id = ? AND sku_id = ?", bookID, skuID).
		Delete(&entity.PriceBookItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAssignmentsByClient returns a client's price-book assignments with
// their book items preloaded, in the resolution tie-break order.
func (r *PriceBookRepository) ListAssignmentsByClient(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	return listClientAssignments(ctx, r.db, clientID)
}

func (r *PriceBookRepository) CreateAssignment(ctx context.Context, assignment *entity.ClientPriceBookAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *PriceBookRepository) DeleteAssignment(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.ClientPriceBookAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
