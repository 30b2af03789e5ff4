package tests

// stubs_test.go
// In-memory repository stubs shared by the unit tests. Every stub returns a
// nil *gorm.DB from DB(), which makes the services run their transactional
// closures directly — the SQL-level locking behavior is covered by the
// integration tests under tests/e2e.

import (
	"context"
	"sync"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── MaterialRepository stub ──────────────────────────────────────────────────

type stubMaterialRepo struct {
	mu        sync.Mutex
	materials map[uuid.UUID]*model.Material
}

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materials: make(map[uuid.UUID]*model.Material)}
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.materials[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Material, error) {
	m, ok := r.materials[id]
	if !ok || m.UserID != userID || !m.Active {
		return nil, gorm.ErrRecordNotFound
	}
	// Hydrate a copy, like a real query — callers never share the stored row.
	out := *m
	return &out, nil
}

func (r *stubMaterialRepo) List(_ context.Context, userID uuid.UUID, _ dto.MaterialFilter) ([]model.Material, int64, error) {
	var result []model.Material
	for _, m := range r.materials {
		if m.UserID == userID && m.Active {
			result = append(result, *m)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubMaterialRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]model.Material, error) {
	result, _, err := r.List(ctx, userID, dto.MaterialFilter{})
	return result, err
}

func (r *stubMaterialRepo) ListLowStock(_ context.Context, userID uuid.UUID) ([]model.Material, error) {
	var result []model.Material
	for _, m := range r.materials {
		if m.UserID == userID && m.Active && m.Quantity.LessThan(m.MinQuantity) {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.materials[m.ID] = m
	return nil
}

func (r *stubMaterialRepo) SoftDelete(_ context.Context, _, id uuid.UUID) error {
	if m, ok := r.materials[id]; ok {
		m.Active = false
	}
	return nil
}

func (r *stubMaterialRepo) Count(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.materials {
		if m.UserID == userID && m.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubMaterialRepo) LockByIDsTx(_ *gorm.DB, userID uuid.UUID, ids []uuid.UUID) ([]model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.Material
	for _, id := range ids {
		if m, ok := r.materials[id]; ok && m.UserID == userID && m.Active {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *stubMaterialRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	next := m.Quantity.Add(delta)
	if next.IsNegative() {
		return repository.ErrStockConflict
	}
	m.Quantity = next
	return nil
}

func (r *stubMaterialRepo) DB() *gorm.DB { return nil }

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.UserID != userID || !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	// Hydrate a copy, like a real query — callers never share the stored row.
	out := *p
	return &out, nil
}

func (r *stubProductRepo) List(_ context.Context, userID uuid.UUID, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.UserID == userID && p.Active {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) ListLowStock(_ context.Context, userID uuid.UUID) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.UserID == userID && p.Active && p.Quantity < p.MinQuantity {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, _, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Count(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.products {
		if p.UserID == userID && p.Active {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) LockByIDTx(_ *gorm.DB, userID, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.UserID != userID || !p.Active {
		return nil, gorm.ErrRecordNotFound
	}
	out := *p
	return &out, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Quantity+delta < 0 {
		return repository.ErrStockConflict
	}
	p.Quantity += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── BOMRepository stub ───────────────────────────────────────────────────────

type stubBOMRepo struct {
	entries []*model.BOMEntry
}

var _ repository.BOMRepository = (*stubBOMRepo)(nil)

func newStubBOMRepo() *stubBOMRepo { return &stubBOMRepo{} }

func (r *stubBOMRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.BOMEntry, error) {
	var result []model.BOMEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (r *stubBOMRepo) FindEntry(_ context.Context, productID, materialID uuid.UUID) (*model.BOMEntry, error) {
	for _, e := range r.entries {
		if e.ProductID == productID && e.MaterialID == materialID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBOMRepo) Create(_ context.Context, e *model.BOMEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubBOMRepo) UpdateQuantity(_ context.Context, productID, materialID uuid.UUID, quantity decimal.Decimal) error {
	for _, e := range r.entries {
		if e.ProductID == productID && e.MaterialID == materialID {
			e.Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubBOMRepo) DeleteByMaterial(_ context.Context, materialID uuid.UUID) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.MaterialID != materialID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *stubBOMRepo) Delete(_ context.Context, productID, materialID uuid.UUID) error {
	for i, e := range r.entries {
		if e.ProductID == productID && e.MaterialID == materialID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── MovementRepository stub ──────────────────────────────────────────────────

type stubMovementRepo struct {
	mu        sync.Mutex
	movements []*model.StockMovement
}

var _ repository.MovementRepository = (*stubMovementRepo)(nil)

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{} }

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, userID uuid.UUID, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	var result []model.StockMovement
	for _, m := range r.movements {
		if m.UserID == userID {
			result = append(result, *m)
		}
	}
	return result, int64(len(result)), nil
}

// ── UserRepository stub ──────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

// ── ClientRepository stub ────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.UserID != userID || !c.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context, userID uuid.UUID, _ dto.ClientFilter) ([]model.Client, int64, error) {
	var result []model.Client
	for _, c := range r.clients {
		if c.UserID == userID && c.Active {
			result = append(result, *c)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) SoftDelete(_ context.Context, _, id uuid.UUID) error {
	if c, ok := r.clients[id]; ok {
		c.Active = false
	}
	return nil
}

func (r *stubClientRepo) Count(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if c.UserID == userID && c.Active {
			n++
		}
	}
	return n, nil
}

// ── QuoteRepository stub ─────────────────────────────────────────────────────

type stubQuoteRepo struct {
	quotes map[uuid.UUID]*model.Quote
}

var _ repository.QuoteRepository = (*stubQuoteRepo)(nil)

func newStubQuoteRepo() *stubQuoteRepo {
	return &stubQuoteRepo{quotes: make(map[uuid.UUID]*model.Quote)}
}

func (r *stubQuoteRepo) Create(_ context.Context, _ *gorm.DB, q *model.Quote) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	r.quotes[q.ID] = q
	return nil
}

func (r *stubQuoteRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*model.Quote, error) {
	q, ok := r.quotes[id]
	if !ok || q.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (r *stubQuoteRepo) List(_ context.Context, userID uuid.UUID, filter dto.QuoteFilter) ([]model.Quote, int64, error) {
	var result []model.Quote
	for _, q := range r.quotes {
		if q.UserID != userID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		result = append(result, *q)
	}
	return result, int64(len(result)), nil
}

func (r *stubQuoteRepo) UpdateStatus(_ context.Context, userID, id uuid.UUID, status string) error {
	q, ok := r.quotes[id]
	if !ok || q.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	q.Status = status
	return nil
}

func (r *stubQuoteRepo) MarkSent(_ context.Context, id uuid.UUID) error {
	q, ok := r.quotes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	q.Status = model.QuoteSent
	return nil
}

func (r *stubQuoteRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	q, ok := r.quotes[id]
	if !ok || q.UserID != userID || q.Status != model.QuoteDraft {
		return gorm.ErrRecordNotFound
	}
	delete(r.quotes, id)
	return nil
}

func (r *stubQuoteRepo) NextNumberTx(_ *gorm.DB, userID uuid.UUID) (int, error) {
	next := 1
	for _, q := range r.quotes {
		if q.UserID == userID && q.Number >= next {
			next = q.Number + 1
		}
	}
	return next, nil
}

func (r *stubQuoteRepo) TotalsByStatus(_ context.Context, userID uuid.UUID) (map[string]decimal.Decimal, map[string]int64, error) {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int64)
	for _, q := range r.quotes {
		if q.UserID != userID {
			continue
		}
		totals[q.Status] = totals[q.Status].Add(q.Total)
		counts[q.Status]++
	}
	return totals, counts, nil
}

func (r *stubQuoteRepo) DB() *gorm.DB { return nil }

// ── Dispatcher stub ──────────────────────────────────────────────────────────

type stubDispatcher struct {
	jobs []dispatchedJob
}

type dispatchedJob struct {
	kind    string
	payload interface{}
}

var _ service.Dispatcher = (*stubDispatcher)(nil)

func (d *stubDispatcher) Dispatch(_ context.Context, kind string, payload interface{}) error {
	d.jobs = append(d.jobs, dispatchedJob{kind: kind, payload: payload})
	return nil
}
