package service

import (
	"context"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostingService derives production costs from a product's bill of materials.
type CostingService interface {
	ProductCost(ctx context.Context, userID, productID uuid.UUID) (*dto.ProductCostResponse, error)
}

type costingService struct {
	products repository.ProductRepository
	bom      repository.BOMRepository
}

func NewCostingService(products repository.ProductRepository, bom repository.BOMRepository) CostingService {
	return &costingService{products: products, bom: bom}
}

func (s *costingService) ProductCost(ctx context.Context, userID, productID uuid.UUID) (*dto.ProductCostResponse, error) {
	product, err := s.products.FindByID(ctx, userID, productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	entries, err := s.bom.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ComputeProductCost(entries, product.LaborCost)
	resp.ProductID = product.ID.String()
	return &resp, nil
}

// ComputeProductCost sums the bill of materials at current unit prices and
// adds the labor cost. Pure function of its inputs, no side effects; exact
// decimal arithmetic throughout, rounding is a presentation concern.
// An empty bill yields materialCost 0 and totalCost = laborCost.
func ComputeProductCost(entries []model.BOMEntry, laborCost decimal.Decimal) dto.ProductCostResponse {
	items := make([]dto.CostLineItem, 0, len(entries))
	materialCost := decimal.Zero
	for _, e := range entries {
		if e.Material == nil {
			continue
		}
		lineCost := e.Quantity.Mul(e.Material.UnitPrice)
		materialCost = materialCost.Add(lineCost)
		items = append(items, dto.CostLineItem{
			Material:  e.Material.Name,
			Quantity:  e.Quantity,
			Unit:      e.Material.Unit,
			UnitPrice: e.Material.UnitPrice,
			LineCost:  lineCost,
		})
	}
	return dto.ProductCostResponse{
		Items:        items,
		MaterialCost: materialCost,
		LaborCost:    laborCost,
		TotalCost:    materialCost.Add(laborCost),
	}
}
