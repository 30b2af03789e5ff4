package service

import (
	"context"
	"time"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
)

// InventoryService exposes the stock movement audit trail.
type InventoryService interface {
	Movements(ctx context.Context, userID uuid.UUID, filter dto.MovementFilter) (*dto.MovementListResponse, error)
}

type inventoryService struct {
	movements repository.MovementRepository
}

func NewInventoryService(movements repository.MovementRepository) InventoryService {
	return &inventoryService{movements: movements}
}

func (s *inventoryService) Movements(ctx context.Context, userID uuid.UUID, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	movements, total, err := s.movements.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, movementToResponse(&movements[i]))
	}
	return &dto.MovementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movementToResponse(m *model.StockMovement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:            m.ID.String(),
		Kind:          m.Kind,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.ProductID != nil {
		s := m.ProductID.String()
		resp.ProductID = &s
		if m.Product != nil {
			resp.ItemName = m.Product.Name
		}
	}
	if m.MaterialID != nil {
		s := m.MaterialID.String()
		resp.MaterialID = &s
		if m.Material != nil {
			resp.ItemName = m.Material.Name
		}
	}
	return resp
}
