package service

import (
	"context"
	"errors"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BOMService manages a product's bill of materials: which raw materials one
// unit consumes, and how much of each.
type BOMService interface {
	List(ctx context.Context, userID, productID uuid.UUID) ([]dto.BOMEntryResponse, error)
	Add(ctx context.Context, userID, productID uuid.UUID, req dto.AddBOMEntryRequest) (*dto.BOMEntryResponse, error)
	UpdateQuantity(ctx context.Context, userID, productID, materialID uuid.UUID, req dto.UpdateBOMEntryRequest) (*dto.BOMEntryResponse, error)
	Remove(ctx context.Context, userID, productID, materialID uuid.UUID) error
}

type bomService struct {
	products  repository.ProductRepository
	materials repository.MaterialRepository
	bom       repository.BOMRepository
}

func NewBOMService(
	products repository.ProductRepository,
	materials repository.MaterialRepository,
	bom repository.BOMRepository,
) BOMService {
	return &bomService{products: products, materials: materials, bom: bom}
}

func (s *bomService) List(ctx context.Context, userID, productID uuid.UUID) ([]dto.BOMEntryResponse, error) {
	if _, err := s.products.FindByID(ctx, userID, productID); err != nil {
		return nil, ErrProductNotFound
	}
	entries, err := s.bom.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BOMEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, bomEntryToResponse(&entries[i]))
	}
	return items, nil
}

func (s *bomService) Add(ctx context.Context, userID, productID uuid.UUID, req dto.AddBOMEntryRequest) (*dto.BOMEntryResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.products.FindByID(ctx, userID, productID); err != nil {
		return nil, ErrProductNotFound
	}
	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return nil, ErrMaterialNotFound
	}
	material, err := s.materials.FindByID(ctx, userID, materialID)
	if err != nil {
		return nil, ErrMaterialNotFound
	}

	if _, err := s.bom.FindEntry(ctx, productID, materialID); err == nil {
		return nil, ErrDuplicateBOMEntry
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	e := &model.BOMEntry{
		ProductID:  productID,
		MaterialID: materialID,
		Quantity:   req.Quantity,
		Material:   material,
	}
	if err := s.bom.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := bomEntryToResponse(e)
	return &resp, nil
}

func (s *bomService) UpdateQuantity(ctx context.Context, userID, productID, materialID uuid.UUID, req dto.UpdateBOMEntryRequest) (*dto.BOMEntryResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.products.FindByID(ctx, userID, productID); err != nil {
		return nil, ErrProductNotFound
	}
	if err := s.bom.UpdateQuantity(ctx, productID, materialID, req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}
	e, err := s.bom.FindEntry(ctx, productID, materialID)
	if err != nil {
		return nil, err
	}
	if e.Material == nil {
		if m, err := s.materials.FindByID(ctx, userID, materialID); err == nil {
			e.Material = m
		}
	}
	resp := bomEntryToResponse(e)
	return &resp, nil
}

func (s *bomService) Remove(ctx context.Context, userID, productID, materialID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, userID, productID); err != nil {
		return ErrProductNotFound
	}
	if err := s.bom.Delete(ctx, productID, materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}
	return nil
}

func bomEntryToResponse(e *model.BOMEntry) dto.BOMEntryResponse {
	resp := dto.BOMEntryResponse{
		MaterialID: e.MaterialID.String(),
		Quantity:   e.Quantity,
	}
	if e.Material != nil {
		resp.MaterialName = e.Material.Name
		resp.Unit = e.Material.Unit
		resp.UnitPrice = e.Material.UnitPrice
		resp.LineCost = e.Quantity.Mul(e.Material.UnitPrice)
		resp.Available = e.Material.Quantity
	} else {
		resp.LineCost = decimal.Zero
	}
	return resp
}
