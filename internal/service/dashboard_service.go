package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardService aggregates the numbers for the home screen. Results are
// cached in Redis for a minute per account; every path falls back to the
// database when the cache is unavailable.
type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	clients   repository.ClientRepository
	products  repository.ProductRepository
	materials repository.MaterialRepository
	quotes    repository.QuoteRepository
	cache     *redis.Client
}

func NewDashboardService(
	clients repository.ClientRepository,
	products repository.ProductRepository,
	materials repository.MaterialRepository,
	quotes repository.QuoteRepository,
	cache *redis.Client,
) DashboardService {
	return &dashboardService{
		clients:   clients,
		products:  products,
		materials: materials,
		quotes:    quotes,
		cache:     cache,
	}
}

func (s *dashboardService) Summary(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	key := "dashboard:" + userID.String()

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached dto.DashboardResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.build(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, key, raw, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) build(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	clients, err := s.clients.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	materials, err := s.materials.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	totals, counts, err := s.quotes.TotalsByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}

	lowProducts, err := s.products.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}
	lowMaterials, err := s.materials.ListLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	lowP := make([]dto.ProductResponse, 0, len(lowProducts))
	for i := range lowProducts {
		lowP = append(lowP, productToResponse(&lowProducts[i]))
	}
	lowM := make([]dto.MaterialResponse, 0, len(lowMaterials))
	for i := range lowMaterials {
		lowM = append(lowM, materialToResponse(&lowMaterials[i]))
	}

	return &dto.DashboardResponse{
		Clients:         clients,
		Products:        products,
		Materials:       materials,
		QuoteTotals:     totals,
		QuoteCounts:     counts,
		LowStockProduct: lowP,
		LowStockMat:     lowM,
	}, nil
}
