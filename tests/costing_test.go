package tests

import (
	"context"
	"testing"

	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProductCost_SumsMaterialsAndLabor(t *testing.T) {
	wood := &model.Material{Name: "Wood", Unit: "m", UnitPrice: decimal.RequireFromString("5.00")}
	glue := &model.Material{Name: "Glue", Unit: "un", UnitPrice: decimal.RequireFromString("3.50")}

	entries := []model.BOMEntry{
		{Quantity: decimal.RequireFromString("2"), Material: wood},   // 10.00
		{Quantity: decimal.RequireFromString("1"), Material: glue},   // 3.50
	}

	resp := service.ComputeProductCost(entries, decimal.RequireFromString("10.00"))

	assert.True(t, resp.MaterialCost.Equal(decimal.RequireFromString("13.50")), "materialCost = %s", resp.MaterialCost)
	assert.True(t, resp.LaborCost.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("23.50")), "totalCost = %s", resp.TotalCost)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Wood", resp.Items[0].Material)
	assert.True(t, resp.Items[0].LineCost.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "Glue", resp.Items[1].Material)
	assert.True(t, resp.Items[1].LineCost.Equal(decimal.RequireFromString("3.50")))
}

func TestComputeProductCost_EmptyBill(t *testing.T) {
	resp := service.ComputeProductCost(nil, decimal.RequireFromString("7.25"))

	assert.True(t, resp.MaterialCost.Equal(decimal.Zero))
	assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("7.25")))
	assert.Empty(t, resp.Items)
}

func TestComputeProductCost_FractionalQuantities(t *testing.T) {
	// 0.1 * 3 must come out exactly 0.3 — no float drift.
	fabric := &model.Material{Name: "Fabric", Unit: "m", UnitPrice: decimal.RequireFromString("3.00")}
	entries := []model.BOMEntry{
		{Quantity: decimal.RequireFromString("0.1"), Material: fabric},
	}

	resp := service.ComputeProductCost(entries, decimal.Zero)

	assert.True(t, resp.MaterialCost.Equal(decimal.RequireFromString("0.3")), "materialCost = %s", resp.MaterialCost)
}

func TestComputeProductCost_SkipsDanglingEntries(t *testing.T) {
	wood := &model.Material{Name: "Wood", Unit: "un", UnitPrice: decimal.RequireFromString("2.00")}
	entries := []model.BOMEntry{
		{Quantity: decimal.RequireFromString("3"), Material: wood},
		{Quantity: decimal.RequireFromString("1"), Material: nil}, // orphaned row
	}

	resp := service.ComputeProductCost(entries, decimal.Zero)

	assert.True(t, resp.MaterialCost.Equal(decimal.RequireFromString("6.00")))
	assert.Len(t, resp.Items, 1)
}

func TestProductCost_ResolvesProductAndBill(t *testing.T) {
	products := newStubProductRepo()
	bom := newStubBOMRepo()
	userID := uuid.New()

	product := &model.Product{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Chair",
		LaborCost: decimal.RequireFromString("10.00"),
		Active:    true,
	}
	require.NoError(t, products.Create(context.Background(), product))

	svc := service.NewCostingService(products, bom)

	resp, err := svc.ProductCost(context.Background(), userID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID.String(), resp.ProductID)
	assert.True(t, resp.TotalCost.Equal(decimal.RequireFromString("10.00")))

	_, err = svc.ProductCost(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}
