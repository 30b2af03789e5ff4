package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manufactureFixture struct {
	svc       service.ManufacturingService
	products  *stubProductRepo
	materials *stubMaterialRepo
	bom       *stubBOMRepo
	movements *stubMovementRepo
	userID    uuid.UUID
	product   *model.Product
	wood      *model.Material
	glue      *model.Material
}

// newManufactureFixture builds the classic two-material setup: a table that
// consumes 2 wood and 1 glue per unit, with 10 wood and 3 glue in stock.
func newManufactureFixture(t *testing.T) *manufactureFixture {
	t.Helper()
	products := newStubProductRepo()
	materials := newStubMaterialRepo()
	bom := newStubBOMRepo()
	movements := newStubMovementRepo()
	userID := uuid.New()

	product := &model.Product{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Table",
		SalePrice: decimal.RequireFromString("50.00"),
		Quantity:  0,
		Active:    true,
	}
	require.NoError(t, products.Create(context.Background(), product))

	wood := &model.Material{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Wood",
		Unit:        "un",
		UnitPrice:   decimal.RequireFromString("1.00"),
		Quantity:    decimal.RequireFromString("10"),
		MinQuantity: decimal.RequireFromString("3"),
		Active:      true,
	}
	glue := &model.Material{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Glue",
		Unit:        "un",
		UnitPrice:   decimal.RequireFromString("2.50"),
		Quantity:    decimal.RequireFromString("3"),
		MinQuantity: decimal.RequireFromString("1"),
		Active:      true,
	}
	require.NoError(t, materials.Create(context.Background(), wood))
	require.NoError(t, materials.Create(context.Background(), glue))

	require.NoError(t, bom.Create(context.Background(), &model.BOMEntry{
		ProductID:  product.ID,
		MaterialID: wood.ID,
		Quantity:   decimal.RequireFromString("2"),
		Material:   wood,
	}))
	require.NoError(t, bom.Create(context.Background(), &model.BOMEntry{
		ProductID:  product.ID,
		MaterialID: glue.ID,
		Quantity:   decimal.RequireFromString("1"),
		Material:   glue,
	}))

	return &manufactureFixture{
		svc:       service.NewManufacturingService(products, materials, bom, movements),
		products:  products,
		materials: materials,
		bom:       bom,
		movements: movements,
		userID:    userID,
		product:   product,
		wood:      wood,
		glue:      glue,
	}
}

func TestManufacture_RejectsNonPositiveQuantity(t *testing.T) {
	f := newManufactureFixture(t)

	for _, qty := range []int{0, -1} {
		_, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: qty})
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	}
}

func TestManufacture_ProductNotFound(t *testing.T) {
	f := newManufactureFixture(t)

	_, err := f.svc.Manufacture(context.Background(), f.userID, uuid.New(), dto.ManufactureRequest{Quantity: 1})
	assert.ErrorIs(t, err, service.ErrProductNotFound)

	// Another account's product must look like it does not exist.
	_, err = f.svc.Manufacture(context.Background(), uuid.New(), f.product.ID, dto.ManufactureRequest{Quantity: 1})
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestManufacture_EmptyBillOfMaterials(t *testing.T) {
	f := newManufactureFixture(t)

	bare := &model.Product{ID: uuid.New(), UserID: f.userID, Name: "Stool", Active: true}
	require.NoError(t, f.products.Create(context.Background(), bare))

	_, err := f.svc.Manufacture(context.Background(), f.userID, bare.ID, dto.ManufactureRequest{Quantity: 1})
	assert.ErrorIs(t, err, service.ErrNoMaterialsDefined)
}

func TestManufacture_InsufficientStockRejectsWholeRun(t *testing.T) {
	f := newManufactureFixture(t)

	// Building 4 tables needs 8 wood (have 10) and 4 glue (have 3).
	_, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 4})
	require.Error(t, err)

	var shortage *service.InsufficientMaterialsError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortfalls, 1)

	s := shortage.Shortfalls[0]
	assert.Equal(t, "Glue", s.Material)
	assert.True(t, s.Required.Equal(decimal.RequireFromString("4")), "required = %s", s.Required)
	assert.True(t, s.Available.Equal(decimal.RequireFromString("3")), "available = %s", s.Available)
	assert.True(t, s.Shortage.Equal(decimal.RequireFromString("1")), "shortage = %s", s.Shortage)

	// Nothing committed: wood untouched even though it had enough.
	assert.True(t, f.wood.Quantity.Equal(decimal.RequireFromString("10")))
	assert.True(t, f.glue.Quantity.Equal(decimal.RequireFromString("3")))
	assert.Equal(t, 0, f.product.Quantity)
	assert.Empty(t, f.movements.movements)
}

func TestManufacture_ReportsEveryShortfall(t *testing.T) {
	f := newManufactureFixture(t)

	// 10 tables need 20 wood and 10 glue — both fall short.
	_, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 10})
	require.Error(t, err)

	var shortage *service.InsufficientMaterialsError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortfalls, 2)

	byName := make(map[string]dto.MaterialShortfall)
	for _, s := range shortage.Shortfalls {
		byName[s.Material] = s
	}
	assert.True(t, byName["Wood"].Shortage.Equal(decimal.RequireFromString("10")))
	assert.True(t, byName["Glue"].Shortage.Equal(decimal.RequireFromString("7")))
}

func TestManufacture_CommitsAndDecrementsStock(t *testing.T) {
	f := newManufactureFixture(t)

	resp, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Built)
	assert.Equal(t, 1, resp.Product.Quantity)
	assert.Empty(t, resp.Warnings)

	assert.True(t, f.wood.Quantity.Equal(decimal.RequireFromString("8")), "wood = %s", f.wood.Quantity)
	assert.True(t, f.glue.Quantity.Equal(decimal.RequireFromString("2")), "glue = %s", f.glue.Quantity)
	assert.Equal(t, 1, f.product.Quantity)

	// One movement per consumed material plus one for the built product.
	require.Len(t, f.movements.movements, 3)
	var productMoves, materialMoves int
	for _, m := range f.movements.movements {
		assert.Equal(t, "manufacture", m.Kind)
		switch {
		case m.ProductID != nil:
			productMoves++
			assert.True(t, m.Quantity.Equal(decimal.RequireFromString("1")))
		case m.MaterialID != nil:
			materialMoves++
			assert.True(t, m.Quantity.IsNegative())
		}
	}
	assert.Equal(t, 1, productMoves)
	assert.Equal(t, 2, materialMoves)
}

func TestManufacture_ProductCountedExactlyOnce(t *testing.T) {
	f := newManufactureFixture(t)

	// The committed increment must land exactly once: in the response, in
	// the stored row, and in the audit balances.
	resp, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Product.Quantity)
	assert.Equal(t, 1, f.product.Quantity)

	var productMove *model.StockMovement
	for _, m := range f.movements.movements {
		if m.ProductID != nil {
			productMove = m
		}
	}
	require.NotNil(t, productMove)
	assert.True(t, productMove.BalanceBefore.Equal(decimal.Zero), "balance before = %s", productMove.BalanceBefore)
	assert.True(t, productMove.BalanceAfter.Equal(decimal.RequireFromString("1")), "balance after = %s", productMove.BalanceAfter)

	// A second run starts from the committed value, not a stale snapshot.
	resp, err = f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Product.Quantity)
	assert.Equal(t, 2, f.product.Quantity)

	productMove = nil
	for _, m := range f.movements.movements {
		if m.ProductID != nil {
			productMove = m
		}
	}
	require.NotNil(t, productMove)
	assert.True(t, productMove.BalanceBefore.Equal(decimal.RequireFromString("1")))
	assert.True(t, productMove.BalanceAfter.Equal(decimal.RequireFromString("2")))
}

func TestManufacture_WarnsWhenStockDropsBelowMinimum(t *testing.T) {
	f := newManufactureFixture(t)

	// Raise the wood minimum so the run drives it below threshold:
	// 2 tables take wood 10→6, under the new minimum of 7.
	f.wood.MinQuantity = decimal.RequireFromString("7")

	resp, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 2})
	require.NoError(t, err)

	require.Len(t, resp.Warnings, 1)
	w := resp.Warnings[0]
	assert.Equal(t, "Wood", w.Material)
	assert.True(t, w.Remaining.Equal(decimal.RequireFromString("6")), "remaining = %s", w.Remaining)
	assert.True(t, w.MinQuantity.Equal(decimal.RequireFromString("7")))

	// Warnings are informational — the run still committed.
	assert.Equal(t, 2, f.product.Quantity)
	assert.True(t, f.wood.Quantity.Equal(decimal.RequireFromString("6")))
}

func TestManufacture_ExactStockCommitsWithoutShortfall(t *testing.T) {
	f := newManufactureFixture(t)

	// 3 tables need exactly 6 wood... and 3 glue, which is exactly what we
	// have. Equality must not be treated as a shortfall.
	resp, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Built)
	assert.True(t, f.glue.Quantity.Equal(decimal.Zero), "glue = %s", f.glue.Quantity)
	assert.True(t, f.wood.Quantity.Equal(decimal.RequireFromString("4")))

	// Glue fell to 0 < min 1, so the commit carries a warning.
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "Glue", resp.Warnings[0].Material)
}

func TestManufacture_SecondRunRevalidatesStock(t *testing.T) {
	f := newManufactureFixture(t)

	// First run consumes the glue down to 1; the second asks for 3 more and
	// must be rejected against the post-commit values.
	_, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 2})
	require.NoError(t, err)

	_, err = f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 3})
	require.Error(t, err)

	var shortage *service.InsufficientMaterialsError
	require.ErrorAs(t, err, &shortage)
	require.Len(t, shortage.Shortfalls, 1)
	assert.Equal(t, "Glue", shortage.Shortfalls[0].Material)
	assert.True(t, shortage.Shortfalls[0].Shortage.Equal(decimal.RequireFromString("2")))

	// Stock never goes negative, and the rejected run changed nothing.
	assert.False(t, f.wood.Quantity.IsNegative())
	assert.False(t, f.glue.Quantity.IsNegative())
	assert.True(t, f.wood.Quantity.Equal(decimal.RequireFromString("6")))
	assert.True(t, f.glue.Quantity.Equal(decimal.RequireFromString("1")))
	assert.Equal(t, 2, f.product.Quantity)
}

func TestManufacture_MissingBOMMaterial(t *testing.T) {
	f := newManufactureFixture(t)

	// A BOM entry pointing at a material that no longer exists must fail the
	// run, not silently skip the entry.
	require.NoError(t, f.bom.Create(context.Background(), &model.BOMEntry{
		ProductID:  f.product.ID,
		MaterialID: uuid.New(),
		Quantity:   decimal.RequireFromString("1"),
	}))

	_, err := f.svc.Manufacture(context.Background(), f.userID, f.product.ID, dto.ManufactureRequest{Quantity: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrMaterialNotFound))

	assert.True(t, f.wood.Quantity.Equal(decimal.RequireFromString("10")))
	assert.True(t, f.glue.Quantity.Equal(decimal.RequireFromString("3")))
}
