package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ManufacturingService records manufacturing runs: build N units of a
// product, consuming material stock according to its bill of materials.
type ManufacturingService interface {
	Manufacture(ctx context.Context, userID, productID uuid.UUID, req dto.ManufactureRequest) (*dto.ManufactureResponse, error)
}

type manufacturingService struct {
	products  repository.ProductRepository
	materials repository.MaterialRepository
	bom       repository.BOMRepository
	movements repository.MovementRepository
}

func NewManufacturingService(
	products repository.ProductRepository,
	materials repository.MaterialRepository,
	bom repository.BOMRepository,
	movements repository.MovementRepository,
) ManufacturingService {
	return &manufacturingService{
		products:  products,
		materials: materials,
		bom:       bom,
		movements: movements,
	}
}

// Manufacture validates and commits one manufacturing run as a single atomic
// unit:
//
//  1. Pre-flight outside the transaction: positive quantity, product
//     ownership, non-empty bill of materials.
//  2. Inside one transaction: lock the product row and all required material
//     rows (FOR UPDATE), re-check sufficiency against the locked values, then
//     decrement each material and increment the product, recording a stock
//     movement per row. Audit balances come from the locked rows.
//
// Sufficiency is only ever decided under the row locks — two concurrent runs
// against the same materials serialize on the locks, so both can never pass
// validation on the same stock. Any shortfall rolls the transaction back with
// the complete shortfall list; nothing is mutated.
//
// Low-stock warnings are computed from the locked pre-commit values (the
// decrement amounts are known, re-reading after commit would open a second
// race window). They never block the commit.
func (s *manufacturingService) Manufacture(ctx context.Context, userID, productID uuid.UUID, req dto.ManufactureRequest) (*dto.ManufactureResponse, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, userID, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	entries, err := s.bom.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoMaterialsDefined
	}

	materialIDs := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		materialIDs = append(materialIDs, e.MaterialID)
	}

	qty := decimal.NewFromInt(int64(req.Quantity))
	var warnings []dto.LowStockWarning

	txErr := runTx(ctx, s.materials.DB(), func(tx *gorm.DB) error {
		// Lock the product row first (always product before materials, so
		// concurrent runs cannot deadlock on lock order), then the material
		// rows. Every balance below is read from a locked row.
		product, err = s.products.LockByIDTx(tx, userID, productID)
		if err != nil {
			return err
		}

		locked, err := s.materials.LockByIDsTx(tx, userID, materialIDs)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]model.Material, len(locked))
		for _, m := range locked {
			byID[m.ID] = m
		}

		// Re-validate sufficiency under the locks, collecting EVERY
		// shortfall so the caller sees the complete picture.
		type draw struct {
			material model.Material
			required decimal.Decimal
		}
		draws := make([]draw, 0, len(entries))
		var shortfalls []dto.MaterialShortfall
		for _, e := range entries {
			m, ok := byID[e.MaterialID]
			if !ok {
				return ErrMaterialNotFound
			}
			required := e.Quantity.Mul(qty)
			if m.Quantity.LessThan(required) {
				shortfalls = append(shortfalls, dto.MaterialShortfall{
					MaterialID: m.ID.String(),
					Material:   m.Name,
					Required:   required,
					Available:  m.Quantity,
					Shortage:   required.Sub(m.Quantity),
					Unit:       m.Unit,
				})
				continue
			}
			draws = append(draws, draw{material: m, required: required})
		}
		if len(shortfalls) > 0 {
			return &InsufficientMaterialsError{Shortfalls: shortfalls}
		}

		warnings = warnings[:0]
		reason := fmt.Sprintf("Manufactured %d x %s", req.Quantity, product.Name)
		for _, d := range draws {
			if err := s.materials.AdjustStockTx(tx, d.material.ID, d.required.Neg()); err != nil {
				return err
			}
			remaining := d.material.Quantity.Sub(d.required)
			matID := d.material.ID
			if err := s.movements.CreateTx(tx, &model.StockMovement{
				UserID:        userID,
				MaterialID:    &matID,
				Kind:          "manufacture",
				Quantity:      d.required.Neg(),
				BalanceBefore: d.material.Quantity,
				BalanceAfter:  remaining,
				Reason:        reason,
				ReferenceID:   &product.ID,
			}); err != nil {
				return err
			}
			if remaining.LessThan(d.material.MinQuantity) {
				warnings = append(warnings, dto.LowStockWarning{
					MaterialID:  d.material.ID.String(),
					Material:    d.material.Name,
					Remaining:   remaining,
					MinQuantity: d.material.MinQuantity,
					Unit:        d.material.Unit,
				})
			}
		}

		if err := s.products.AdjustStockTx(tx, product.ID, req.Quantity); err != nil {
			return err
		}
		prodID := product.ID
		return s.movements.CreateTx(tx, &model.StockMovement{
			UserID:        userID,
			ProductID:     &prodID,
			Kind:          "manufacture",
			Quantity:      qty,
			BalanceBefore: decimal.NewFromInt(int64(product.Quantity)),
			BalanceAfter:  decimal.NewFromInt(int64(product.Quantity + req.Quantity)),
			Reason:        reason,
		})
	})
	if txErr != nil {
		var shortage *InsufficientMaterialsError
		if errors.As(txErr, &shortage) {
			return nil, txErr
		}
		if errors.Is(txErr, ErrMaterialNotFound) {
			return nil, txErr
		}
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrOperationFailed, txErr)
	}

	product.Quantity += req.Quantity
	if warnings == nil {
		warnings = []dto.LowStockWarning{}
	}
	return &dto.ManufactureResponse{
		Product:  productToResponse(product),
		Built:    req.Quantity,
		Warnings: warnings,
	}, nil
}
