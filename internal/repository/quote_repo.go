package repository

import (
	"context"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteRepository defines the data access contract for quotes.
type QuoteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, q *model.Quote) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Quote, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.QuoteFilter) ([]model.Quote, int64, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// NextNumberTx allocates the next per-account quote number. Must run
	// inside the creation transaction so two concurrent quotes cannot share
	// a number.
	NextNumberTx(tx *gorm.DB, userID uuid.UUID) (int, error)
	TotalsByStatus(ctx context.Context, userID uuid.UUID) (map[string]decimal.Decimal, map[string]int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type quoteRepo struct{ db *gorm.DB }

func NewQuoteRepository(db *gorm.DB) QuoteRepository { return &quoteRepo{db: db} }

func (r *quoteRepo) Create(ctx context.Context, tx *gorm.DB, q *model.Quote) error {
	return tx.WithContext(ctx).Create(q).Error
}

func (r *quoteRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Quote, error) {
	var q model.Quote
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&q).Error
	return &q, err
}

func (r *quoteRepo) List(ctx context.Context, userID uuid.UUID, filter dto.QuoteFilter) ([]model.Quote, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Quote{}).
		Preload("Client").Preload("Items").
		Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var quotes []model.Quote
	err := q.Order("number DESC").Offset(offset).Limit(filter.Limit).Find(&quotes).Error
	return quotes, total, err
}

func (r *quoteRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Quote{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quoteRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Quote{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.QuoteSent,
			"sent_at": gorm.Expr("now()"),
		}).Error
}

func (r *quoteRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, model.QuoteDraft).
		Delete(&model.Quote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quoteRepo) NextNumberTx(tx *gorm.DB, userID uuid.UUID) (int, error) {
	var next int
	err := tx.Raw(
		`SELECT COALESCE(MAX(number), 0) + 1 FROM quotes WHERE user_id = ?`,
		userID,
	).Scan(&next).Error
	return next, err
}

func (r *quoteRepo) TotalsByStatus(ctx context.Context, userID uuid.UUID) (map[string]decimal.Decimal, map[string]int64, error) {
	rows, err := r.db.WithContext(ctx).Model(&model.Quote{}).
		Select("status, COALESCE(SUM(total), 0) AS sum, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("status").Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var sum decimal.Decimal
		var n int64
		if err := rows.Scan(&status, &sum, &n); err != nil {
			return nil, nil, err
		}
		totals[status] = sum
		counts[status] = n
	}
	return totals, counts, rows.Err()
}

func (r *quoteRepo) DB() *gorm.DB { return r.db }
