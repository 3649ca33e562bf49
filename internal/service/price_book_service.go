package service

import (
	"context"
	"fmt"
	"time"

	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/entity"
	"github.com/GiacomoIaco/discount-fence-hub-sub002/internal/repository"
	"github.com/google/uuid"
)

type PriceBookService struct {
	repo *repository.PriceBookRepository
}

func NewPriceBookService(repo *repository.PriceBookRepository) *PriceBookService {
	return &PriceBookService{repo: repo}
}

type CreatePriceBookInput struct {
	Name string `json:"name" binding:"required"`
}

type CreateAssignmentInput struct {
	PriceBookID   string     `json:"price_book_id" binding:"required"`
	RateSheetID   *string    `json:"rate_sheet_id"`
	IsDefault     bool       `json:"is_default"`
	EffectiveDate *time.Time `json:"effective_date"`
}

func (s *PriceBookService) List(ctx context.Context) ([]entity.PriceBook, error) {
	return s.repo.List(ctx)
}

func (s *PriceBookService) Get(ctx context.Context, id string) (*entity.PriceBook, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PriceBookService) Create(ctx context.Context, input *CreatePriceBookInput) (*entity.PriceBook, error) {
	book := &entity.PriceBook{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create price book: %w", err)
	}
	return book, nil
}

func (s *PriceBookService) AddItem(ctx context.Context, bookID, skuID string) error {
	if _, err := s.repo.FindByID(ctx, bookID); err != nil {
		return err
	}
	item := &entity.PriceBookItem{
		ID:          uuid.New().String(),
		PriceBookID: bookID,
		SKUID:       skuID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return fmt.Errorf("add price book item: %w", err)
	}
	return nil
}

func (s *PriceBookService) RemoveItem(ctx context.Context, bookID, skuID string) error {
	return s.repo.RemoveItem(ctx, bookID, skuID)
}

func (s *PriceBookService) ListAssignments(ctx context.Context, clientID string) ([]entity.ClientPriceBookAssignment, error) {
	return s.repo.ListAssignmentsByClient(ctx, clientID)
}

func (s *PriceBookService) CreateAssignment(ctx context.Context, clientID string, input *CreateAssignmentInput) (*entity.ClientPriceBookAssignment, error) {
	if _, err := s.repo.FindByID(ctx, input.PriceBookID); err != nil {
		return nil, fmt.Errorf("price book %s: %w", input.PriceBookID, err)
	}
	assignment := &entity.ClientPriceBookAssignment{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		PriceBookID:   input.PriceBookID,
		RateSheetID:   input.RateSheetID,
		IsDefault:     input.IsDefault,
		EffectiveDate: input.EffectiveDate,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.repo.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return assignment, nil
}

func (s *PriceBookService) DeleteAssignment(ctx context.Context, id string) error {
	return s.repo.DeleteAssignment(ctx, id)
}
