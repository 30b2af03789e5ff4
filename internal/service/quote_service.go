package service

import (
	"context"
	"time"

	"github.com/guustavovelos0/artisan/internal/dto"
	"github.com/guustavovelos0/artisan/internal/infra"
	"github.com/guustavovelos0/artisan/internal/model"
	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobQuoteEmail names the background job that renders a quote PDF and mails
// it to the client.
const JobQuoteEmail = "quote_email"

// Dispatcher enqueues background jobs. Implemented by the worker package.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind string, payload interface{}) error
}

// QuoteEmailJob is the payload for JobQuoteEmail.
type QuoteEmailJob struct {
	QuoteID string `json:"quote_id"`
	UserID  string `json:"user_id"`
	// Email overrides the client's stored address when set.
	Email string `json:"email,omitempty"`
}

// QuoteService manages price quotes: creation with price snapshots, status
// transitions, and delivery to the client.
type QuoteService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.QuoteResponse, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.QuoteFilter) (*dto.QuoteListResponse, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, req dto.UpdateQuoteStatusRequest) (*dto.QuoteResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Send(ctx context.Context, userID, id uuid.UUID, req dto.SendQuoteRequest) error
	// RenderPDF writes the quote document to disk and returns its path.
	RenderPDF(ctx context.Context, userID, id uuid.UUID) (string, error)
}

type quoteService struct {
	quotes     repository.QuoteRepository
	clients    repository.ClientRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	dispatcher Dispatcher
	pdfPath    string
}

func NewQuoteService(
	quotes repository.QuoteRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	dispatcher Dispatcher,
	pdfPath string,
) QuoteService {
	return &quoteService{
		quotes:     quotes,
		clients:    clients,
		products:   products,
		users:      users,
		dispatcher: dispatcher,
		pdfPath:    pdfPath,
	}
}

// Create snapshots product names and prices into the quote items so later
// catalog edits do not rewrite history. The per-account quote number is
// allocated inside the creation transaction.
func (s *quoteService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, ErrClientNotFound
	}
	client, err := s.clients.FindByID(ctx, userID, clientID)
	if err != nil {
		return nil, ErrClientNotFound
	}

	items := make([]model.QuoteItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		p, err := s.products.FindByID(ctx, userID, productID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		lineTotal := p.SalePrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		pid := p.ID
		items = append(items, model.QuoteItem{
			ProductID:   &pid,
			Description: p.Name,
			Quantity:    it.Quantity,
			UnitPrice:   p.SalePrice,
			LineTotal:   lineTotal,
		})
	}
	if req.Discount.GreaterThan(subtotal) {
		return nil, ErrDiscountTooLarge
	}

	q := &model.Quote{
		UserID:   userID,
		ClientID: client.ID,
		Status:   model.QuoteDraft,
		Subtotal: subtotal,
		Discount: req.Discount,
		Total:    subtotal.Sub(req.Discount),
		Notes:    req.Notes,
		Items:    items,
	}
	if req.ValidUntil != nil {
		t, err := time.Parse("2006-01-02", *req.ValidUntil)
		if err == nil {
			q.ValidUntil = &t
		}
	}

	txErr := runTx(ctx, s.quotes.DB(), func(tx *gorm.DB) error {
		number, err := s.quotes.NextNumberTx(tx, userID)
		if err != nil {
			return err
		}
		q.Number = number
		return s.quotes.Create(ctx, tx, q)
	})
	if txErr != nil {
		return nil, txErr
	}

	q.Client = client
	resp := quoteToResponse(q)
	return &resp, nil
}

func (s *quoteService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.QuoteResponse, error) {
	q, err := s.quotes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrQuoteNotFound
	}
	resp := quoteToResponse(q)
	return &resp, nil
}

func (s *quoteService) List(ctx context.Context, userID uuid.UUID, filter dto.QuoteFilter) (*dto.QuoteListResponse, error) {
	quotes, total, err := s.quotes.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(quotes))
	for i := range quotes {
		items = append(items, quoteToResponse(&quotes[i]))
	}
	return &dto.QuoteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *quoteService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req dto.UpdateQuoteStatusRequest) (*dto.QuoteResponse, error) {
	if err := s.quotes.UpdateStatus(ctx, userID, id, req.Status); err != nil {
		return nil, ErrQuoteNotFound
	}
	q, err := s.quotes.FindByID(ctx, userID, id)
	if err != nil {
		return nil, ErrQuoteNotFound
	}
	resp := quoteToResponse(q)
	return &resp, nil
}

func (s *quoteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q, err := s.quotes.FindByID(ctx, userID, id)
	if err != nil {
		return ErrQuoteNotFound
	}
	if q.Status != model.QuoteDraft {
		return ErrQuoteNotEditable
	}
	return s.quotes.Delete(ctx, userID, id)
}

// Send enqueues the PDF render + email delivery as a background job. The
// quote is marked sent by the worker only after the email goes out.
func (s *quoteService) Send(ctx context.Context, userID, id uuid.UUID, req dto.SendQuoteRequest) error {
	q, err := s.quotes.FindByID(ctx, userID, id)
	if err != nil {
		return ErrQuoteNotFound
	}

	var email string
	if req.Email != nil && *req.Email != "" {
		email = *req.Email
	} else if q.Client != nil && q.Client.Email != nil && *q.Client.Email != "" {
		email = *q.Client.Email
	} else {
		return ErrClientHasNoEmail
	}

	return s.dispatcher.Dispatch(ctx, JobQuoteEmail, QuoteEmailJob{
		QuoteID: q.ID.String(),
		UserID:  userID.String(),
		Email:   email,
	})
}

func (s *quoteService) RenderPDF(ctx context.Context, userID, id uuid.UUID) (string, error) {
	q, err := s.quotes.FindByID(ctx, userID, id)
	if err != nil {
		return "", ErrQuoteNotFound
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	businessName := u.BusinessName
	if businessName == "" {
		businessName = u.Name
	}
	return infra.GenerateQuotePDF(q, businessName, s.pdfPath)
}

func quoteToResponse(q *model.Quote) dto.QuoteResponse {
	items := make([]dto.QuoteItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		var productID *string
		if it.ProductID != nil {
			s := it.ProductID.String()
			productID = &s
		}
		items = append(items, dto.QuoteItemResponse{
			ProductID:   productID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}

	resp := dto.QuoteResponse{
		ID:        q.ID.String(),
		Number:    q.Number,
		ClientID:  q.ClientID.String(),
		Status:    q.Status,
		Items:     items,
		Subtotal:  q.Subtotal,
		Discount:  q.Discount,
		Total:     q.Total,
		Notes:     q.Notes,
		CreatedAt: q.CreatedAt.Format(time.RFC3339),
	}
	if q.Client != nil {
		resp.ClientName = q.Client.Name
	}
	if q.ValidUntil != nil {
		v := q.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &v
	}
	if q.SentAt != nil {
		v := q.SentAt.Format(time.RFC3339)
		resp.SentAt = &v
	}
	return resp
}
