package repository

import (
	"context"

	"github.com/guustavovelos0/artisan/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BOMRepository manages bill-of-materials entries. Ownership of the product
// and material is checked by the service before any call lands here.
type BOMRepository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.BOMEntry, error)
	FindEntry(ctx context.Context, productID, materialID uuid.UUID) (*model.BOMEntry, error)
	Create(ctx context.Context, e *model.BOMEntry) error
	UpdateQuantity(ctx context.Context, productID, materialID uuid.UUID, quantity decimal.Decimal) error
	Delete(ctx context.Context, productID, materialID uuid.UUID) error
	// DeleteByMaterial removes the material from every bill that lists it.
	// Called when a material is retired — the DB CASCADE only covers hard
	// deletes, and a retired material must stop contributing to costs.
	DeleteByMaterial(ctx context.Context, materialID uuid.UUID) error
}

type bomRepo struct{ db *gorm.DB }

func NewBOMRepository(db *gorm.DB) BOMRepository { return &bomRepo{db: db} }

func (r *bomRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.BOMEntry, error) {
	var entries []model.BOMEntry
	err := r.db.WithContext(ctx).
		Preload("Material").
		Where("product_id = ?", productID).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *bomRepo) FindEntry(ctx context.Context, productID, materialID uuid.UUID) (*model.BOMEntry, error) {
	var e model.BOMEntry
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND material_id = ?", productID, materialID).
		First(&e).Error
	return &e, err
}

func (r *bomRepo) Create(ctx context.Context, e *model.BOMEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *bomRepo) UpdateQuantity(ctx context.Context, productID, materialID uuid.UUID, quantity decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.BOMEntry{}).
		Where("product_id = ? AND material_id = ?", productID, materialID).
		Update("quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bomRepo) DeleteByMaterial(ctx context.Context, materialID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&model.BOMEntry{}).Error
}

func (r *bomRepo) Delete(ctx context.Context, productID, materialID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND material_id = ?", productID, materialID).
		Delete(&model.BOMEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
