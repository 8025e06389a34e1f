package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/go-quotations/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultMaxAttempts is the first insert plus one retry with a fresh number.
const DefaultMaxAttempts = 2

// QuotationStore commits drafts and owns the only mutation allowed on an
// issued quotation, its status.
type QuotationStore struct {
	DB          *gorm.DB
	Numberer    Numberer
	MaxAttempts int
	Timeout     time.Duration
	Now         func() time.Time
}

func NewQuotationStore(db *gorm.DB, numberer Numberer) *QuotationStore {
	return &QuotationStore{
		DB:          db,
		Numberer:    numberer,
		MaxAttempts: DefaultMaxAttempts,
		Timeout:     DefaultStoreTimeout,
		Now:         time.Now,
	}
}

// Commit writes the header and every line in one transaction. A number
// collision rolls back and retries with a new number; any other failure, or
// running out of attempts, returns a *PersistenceError and leaves nothing
// behind.
func (s *QuotationStore) Commit(ctx context.Context, draft *QuotationDraft) (*models.Quotation, error) {
	if draft == nil || len(draft.Items) == 0 {
		return nil, &PersistenceError{Op: "commit quotation", Err: ErrNoLineItems}
	}
	attempts := s.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		q := newQuotation(draft, s.Numberer.Next(s.now()))
		err := s.insert(ctx, q)
		if err == nil {
			zap.L().Info("quotation issued",
				zap.Uint("id", q.ID),
				zap.String("number", q.Number),
				zap.String("total", q.TotalAmount.StringFixed(2)),
				zap.Int("lines", len(q.Items)))
			return q, nil
		}
		if !isUniqueViolation(err) {
			return nil, &PersistenceError{Op: "commit quotation", Err: err}
		}
		zap.L().Warn("quotation number collision",
			zap.String("number", q.Number),
			zap.Int("attempt", attempt))
		lastErr = err
	}
	return nil, &PersistenceError{
		Op:  "commit quotation",
		Err: fmt.Errorf("%w after %d attempts: %v", ErrNumberingCollision, attempts, lastErr),
	}
}

func (s *QuotationStore) insert(ctx context.Context, q *models.Quotation) error {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	items := q.Items
	q.Items = nil
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
			return fmt.Errorf("insert header: %w", err)
		}
		for i := range items {
			items[i].QuotationID = q.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("insert line %d: %w", i+1, err)
			}
		}
		return nil
	})
	q.Items = items
	return err
}

// SetStatus changes the status of quotation id. Nothing else is ever updated.
func (s *QuotationStore) SetStatus(ctx context.Context, id uint, status string) (models.QuotationStatus, error) {
	st, ok := models.ParseQuotationStatus(status)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	res := s.DB.WithContext(ctx).Model(&models.Quotation{}).Where("id = ?", id).Update("status", st)
	if res.Error != nil {
		return "", &PersistenceError{Op: "set quotation status", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return "", ErrNotFound
	}
	return st, nil
}

func (s *QuotationStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func newQuotation(draft *QuotationDraft, number string) *models.Quotation {
	q := &models.Quotation{
		Number:        number,
		QuotationDate: draft.QuotationDate,
		CustomerName:  draft.CustomerName,
		TotalAmount:   draft.TotalAmount,
		Status:        models.QuotationStatusIssued,
		Items:         make([]models.QuotationItem, len(draft.Items)),
	}
	for i, l := range draft.Items {
		q.Items[i] = models.QuotationItem{
			ProductID:        l.ProductID,
			ProductName:      l.ProductName,
			ProductModel:     l.ProductModel,
			ProductBrand:     l.ProductBrand,
			Quantity:         l.Quantity,
			UnitPriceAtQuote: l.UnitPrice,
			GSTRateAtQuote:   l.GSTRate,
			ItemTotal:        l.Price.Total,
			Position:         i,
		}
	}
	return q
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
