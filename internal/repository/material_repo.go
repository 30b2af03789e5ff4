package repository

import (
	"context"
	"errors"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockConflict is returned by guarded stock updates when the change would
// drive the quantity on hand negative. The row is left untouched.
var ErrStockConflict = errors.New("stock update would drive quantity negative")

// MaterialRepository defines the data access contract for raw materials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Material, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.MaterialFilter) ([]model.Material, int64, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]model.Material, error)
	ListLowStock(ctx context.Context, userID uuid.UUID) ([]model.Material, error)
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, userID, id uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	// LockByIDsTx takes row locks (SELECT … FOR UPDATE) so that the
	// check-then-decrement sequence of a manufacturing run is serialized
	// against concurrent runs touching the same materials.
	LockByIDsTx(tx *gorm.DB, userID uuid.UUID, ids []uuid.UUID) ([]model.Material, error)
	// AdjustStockTx applies a signed delta, refusing to go below zero.
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND active = true", id, userID).
		First(&m).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context, userID uuid.UUID, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	var materials []model.Material
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("user_id = ? AND active = true", userID)
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.LowStock {
		q = q.Where("quantity < min_quantity")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&materials).Error
	return materials, total, err
}

func (r *materialRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ? AND active = true", userID).
		Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) ListLowStock(ctx context.Context, userID uuid.UUID) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true AND quantity < min_quantity", userID).
		Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) SoftDelete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("active", false).Error
}

func (r *materialRepo) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Material{}).
		Where("user_id = ? AND active = true", userID).Count(&n).Error
	return n, err
}

func (r *materialRepo) LockByIDsTx(tx *gorm.DB, userID uuid.UUID, ids []uuid.UUID) ([]model.Material, error) {
	var materials []model.Material
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND user_id = ? AND active = true", ids, userID).
		Find(&materials).Error
	return materials, err
}

func (r *materialRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	res := tx.Model(&model.Material{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *materialRepo) DB() *gorm.DB { return r.db }
