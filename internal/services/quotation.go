package services

import (
	"context"

	"github.com/diewo77/go-quotations/internal/models"
)

// QuotationService runs the create workflow (assemble, then commit) and
// exposes the read path.
type QuotationService struct {
	Assembler *Assembler
	Store     *QuotationStore
	Reader    *QuotationReader
}

func NewQuotationService(assembler *Assembler, store *QuotationStore, reader *QuotationReader) *QuotationService {
	return &QuotationService{Assembler: assembler, Store: store, Reader: reader}
}

// Create validates and prices req, then commits it. Validation failures
// return a *ValidationError and never reach the store.
func (s *QuotationService) Create(ctx context.Context, req QuotationRequest) (*models.Quotation, error) {
	draft, err := s.Assembler.Assemble(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.Store.Commit(ctx, draft)
}

func (s *QuotationService) Get(ctx context.Context, id uint) (*QuotationView, error) {
	return s.Reader.Load(ctx, id)
}

func (s *QuotationService) List(ctx context.Context, limit, offset int) ([]models.Quotation, int64, error) {
	return s.Reader.List(ctx, limit, offset)
}

func (s *QuotationService) SetStatus(ctx context.Context, id uint, status string) (models.QuotationStatus, error) {
	return s.Store.SetStatus(ctx, id, status)
}
