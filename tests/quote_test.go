package tests

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteFixture struct {
	svc        service.QuoteService
	quotes     *stubQuoteRepo
	clients    *stubClientRepo
	products   *stubProductRepo
	users      *stubUserRepo
	dispatcher *stubDispatcher
	userID     uuid.UUID
	client     *model.Client
	product    *model.Product
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()
	quotes := newStubQuoteRepo()
	clients := newStubClientRepo()
	products := newStubProductRepo()
	users := newStubUserRepo()
	dispatcher := &stubDispatcher{}

	user := &model.User{ID: uuid.New(), Email: "maker@example.com", Name: "Maker", Active: true}
	require.NoError(t, users.Create(context.Background(), user))

	email := "client@example.com"
	client := &model.Client{ID: uuid.New(), UserID: user.ID, Name: "Acme", Email: &email, Active: true}
	require.NoError(t, clients.Create(context.Background(), client))

	product := &model.Product{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      "Oak table",
		SalePrice: decimal.RequireFromString("120.00"),
		Active:    true,
	}
	require.NoError(t, products.Create(context.Background(), product))

	return &quoteFixture{
		svc:        service.NewQuoteService(quotes, clients, products, users, dispatcher, t.TempDir()),
		quotes:     quotes,
		clients:    clients,
		products:   products,
		users:      users,
		dispatcher: dispatcher,
		userID:     user.ID,
		client:     client,
		product:    product,
	}
}

func TestQuoteCreate_SnapshotsPricesAndNumbersSequentially(t *testing.T) {
	f := newQuoteFixture(t)

	req := dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items: []dto.QuoteItemRequest{
			{ProductID: f.product.ID.String(), Quantity: 2},
		},
		Discount: decimal.RequireFromString("20.00"),
	}

	first, err := f.svc.Create(context.Background(), f.userID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, model.QuoteDraft, first.Status)
	assert.True(t, first.Subtotal.Equal(decimal.RequireFromString("240.00")))
	assert.True(t, first.Total.Equal(decimal.RequireFromString("220.00")))
	require.Len(t, first.Items, 1)
	assert.Equal(t, "Oak table", first.Items[0].Description)
	assert.True(t, first.Items[0].UnitPrice.Equal(decimal.RequireFromString("120.00")))

	// A later price change must not rewrite the snapshot.
	f.product.SalePrice = decimal.RequireFromString("999.00")

	second, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)

	stored, err := f.svc.Get(context.Background(), f.userID, uuid.MustParse(first.ID))
	require.NoError(t, err)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.RequireFromString("120.00")))
}

func TestQuoteCreate_RejectsDiscountAboveSubtotal(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
		Discount: decimal.RequireFromString("150.00"),
	})
	assert.ErrorIs(t, err, service.ErrDiscountTooLarge)
	assert.Empty(t, f.quotes.quotes)
}

func TestQuoteCreate_UnknownClientOrProduct(t *testing.T) {
	f := newQuoteFixture(t)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: uuid.NewString(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrClientNotFound)

	_, err = f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestQuoteDelete_DraftOnly(t *testing.T) {
	f := newQuoteFixture(t)

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = f.svc.UpdateStatus(context.Background(), f.userID, id, dto.UpdateQuoteStatusRequest{Status: model.QuoteSent})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), f.userID, id)
	assert.ErrorIs(t, err, service.ErrQuoteNotEditable)

	_, err = f.svc.UpdateStatus(context.Background(), f.userID, id, dto.UpdateQuoteStatusRequest{Status: model.QuoteDraft})
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(context.Background(), f.userID, id))

	_, err = f.svc.Get(context.Background(), f.userID, id)
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}

func TestQuoteSend_EnqueuesEmailJob(t *testing.T) {
	f := newQuoteFixture(t)

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Send(context.Background(), f.userID, id, dto.SendQuoteRequest{}))
	require.Len(t, f.dispatcher.jobs, 1)
	assert.Equal(t, service.JobQuoteEmail, f.dispatcher.jobs[0].kind)

	job, ok := f.dispatcher.jobs[0].payload.(service.QuoteEmailJob)
	require.True(t, ok)
	assert.Equal(t, resp.ID, job.QuoteID)
	assert.Equal(t, "client@example.com", job.Email)

	// The payload must survive the queue round-trip.
	raw, err := json.Marshal(job)
	require.NoError(t, err)
	var decoded service.QuoteEmailJob
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, job, decoded)
}

func TestQuoteSend_ExplicitEmailOverridesClient(t *testing.T) {
	f := newQuoteFixture(t)

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	override := "other@example.com"
	require.NoError(t, f.svc.Send(context.Background(), f.userID, uuid.MustParse(resp.ID), dto.SendQuoteRequest{Email: &override}))

	job := f.dispatcher.jobs[0].payload.(service.QuoteEmailJob)
	assert.Equal(t, override, job.Email)
}

func TestQuoteSend_FailsWithoutAnyEmail(t *testing.T) {
	f := newQuoteFixture(t)
	f.client.Email = nil

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateQuoteRequest{
		ClientID: f.client.ID.String(),
		Items:    []dto.QuoteItemRequest{{ProductID: f.product.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	err = f.svc.Send(context.Background(), f.userID, uuid.MustParse(resp.ID), dto.SendQuoteRequest{})
	assert.ErrorIs(t, err, service.ErrClientHasNoEmail)
	assert.Empty(t, f.dispatcher.jobs)
}
