package service

import (
	"context"
	"fmt"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialService defines the business logic contract for raw materials.
type MaterialService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.MaterialResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AdjustStock(ctx context.Context, userID, id uuid.UUID, req dto.AdjustStockRequest) (*dto.MaterialResponse, error)
}

type materialService struct {
	repo      repository.MaterialRepository
	movements repository.MovementRepository
	bom       repository.BOMRepository
}

func NewMaterialService(
	repo repository.MaterialRepository,
	movements repository.MovementRepository,
	bom repository.BOMRepository,
) MaterialService {
	return &materialService{repo: repo, movements: movements, bom: bom}
}

func (s *materialService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	m := &model.Material{
		UserID:      userID,
		Name:        req.Name,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Active:      true,
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		m.CategoryID = &cid
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrMaterialNotFound
	}
	resp := materialToResponse(m)
	return &resp, nil
}

func (s *materialService) List(ctx context.Context, userID uuid.UUID, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	materials, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		items = append(items, materialToResponse(&materials[i]))
	}
	return &dto.MaterialListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *materialService) Update(ctx context.Context, userID, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrMaterialNotFound
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Unit != nil {
		m.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		m.UnitPrice = *req.UnitPrice
	}
	if req.MinQuantity != nil {
		m.MinQuantity = *req.MinQuantity
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		m.CategoryID = &cid
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := materialToResponse(m)
	return &resp, nil
}

// Delete retires the material and pulls it off every bill of materials.
// Leaving the BOM rows behind would keep the retired material priced into
// cost breakdowns while making every manufacturing run against those
// products fail.
func (s *materialService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return ErrMaterialNotFound
	}
	if err := s.repo.SoftDelete(ctx, userID, id); err != nil {
		return err
	}
	return s.bom.DeleteByMaterial(ctx, id)
}

// AdjustStock applies a manual signed stock correction (purchase received,
// spillage, recount) and records the movement inside one transaction.
func (s *materialService) AdjustStock(ctx context.Context, userID, id uuid.UUID, req dto.AdjustStockRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrMaterialNotFound
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AdjustStockTx(tx, m.ID, req.Delta); err != nil {
			return err
		}
		mid := m.ID
		return s.movements.CreateTx(tx, &model.StockMovement{
			UserID:        userID,
			MaterialID:    &mid,
			Kind:          "adjustment",
			Quantity:      req.Delta,
			BalanceBefore: m.Quantity,
			BalanceAfter:  m.Quantity.Add(req.Delta),
			Reason:        req.Reason,
		})
	})
	if txErr != nil {
		if txErr == repository.ErrStockConflict {
			return nil, fmt.Errorf("cannot remove %s %s: only %s on hand", req.Delta.Neg(), m.Unit, m.Quantity)
		}
		return nil, txErr
	}
	m.Quantity = m.Quantity.Add(req.Delta)
	resp := materialToResponse(m)
	return &resp, nil
}

func materialToResponse(m *model.Material) dto.MaterialResponse {
	var categoryID *string
	if m.CategoryID != nil {
		s := m.CategoryID.String()
		categoryID = &s
	}
	return dto.MaterialResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Unit:        m.Unit,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		MinQuantity: m.MinQuantity,
		CategoryID:  categoryID,
		LowStock:    m.Quantity.LessThan(m.MinQuantity),
	}
}
