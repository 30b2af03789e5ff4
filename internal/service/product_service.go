package service

import (
	"context"
	"fmt"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AdjustStock(ctx context.Context, userID, id uuid.UUID, req dto.AdjustProductStockRequest) (*dto.ProductResponse, error)
}

type productService struct {
	repo      repository.ProductRepository
	movements repository.MovementRepository
}

func NewProductService(repo repository.ProductRepository, movements repository.MovementRepository) ProductService {
	return &productService{repo: repo, movements: movements}
}

func (s *productService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		LaborCost:   req.LaborCost,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Active:      true,
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		p.CategoryID = &cid
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, userID uuid.UUID, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.SalePrice != nil {
		p.SalePrice = *req.SalePrice
	}
	if req.LaborCost != nil {
		p.LaborCost = *req.LaborCost
	}
	if req.MinQuantity != nil {
		p.MinQuantity = *req.MinQuantity
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		p.CategoryID = &cid
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return ErrProductNotFound
	}
	return s.repo.SoftDelete(ctx, userID, id)
}

// AdjustStock applies a manual signed stock correction and records the
// movement, both inside one transaction.
func (s *productService) AdjustStock(ctx context.Context, userID, id uuid.UUID, req dto.AdjustProductStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AdjustStockTx(tx, p.ID, req.Delta); err != nil {
			return err
		}
		pid := p.ID
		return s.movements.CreateTx(tx, &model.StockMovement{
			UserID:        userID,
			ProductID:     &pid,
			Kind:          "adjustment",
			Quantity:      decimal.NewFromInt(int64(req.Delta)),
			BalanceBefore: decimal.NewFromInt(int64(p.Quantity)),
			BalanceAfter:  decimal.NewFromInt(int64(p.Quantity + req.Delta)),
			Reason:        req.Reason,
		})
	})
	if txErr != nil {
		if txErr == repository.ErrStockConflict {
			return nil, fmt.Errorf("cannot remove %d units: only %d on hand", -req.Delta, p.Quantity)
		}
		return nil, txErr
	}
	p.Quantity += req.Delta
	resp := productToResponse(p)
	return &resp, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	var categoryID *string
	if p.CategoryID != nil {
		s := p.CategoryID.String()
		categoryID = &s
	}
	return dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		SalePrice:   p.SalePrice,
		LaborCost:   p.LaborCost,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		CategoryID:  categoryID,
		LowStock:    p.Quantity < p.MinQuantity,
	}
}
