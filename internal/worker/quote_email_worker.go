package worker

// quote_email_worker.go
// Renders the quote PDF and emails it to the client. SMTP sends go through
// the circuit breaker so a dead relay fast-fails instead of stalling the
// pool. The quote is marked sent only after the email goes out.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guustavovelos0/artisan/internal/infra"
	"github.com/guustavovelos0/artisan/internal/repository"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// QuoteEmailWorker processes service.JobQuoteEmail jobs.
type QuoteEmailWorker struct {
	quotes      repository.QuoteRepository
	users       repository.UserRepository
	mailer      *infra.Mailer
	breaker     *infra.CircuitBreaker
	storagePath string
}

func NewQuoteEmailWorker(
	quotes repository.QuoteRepository,
	users repository.UserRepository,
	mailer *infra.Mailer,
	breaker *infra.CircuitBreaker,
	storagePath string,
) *QuoteEmailWorker {
	return &QuoteEmailWorker{
		quotes:      quotes,
		users:       users,
		mailer:      mailer,
		breaker:     breaker,
		storagePath: storagePath,
	}
}

// Process renders and delivers one quote.
func (w *QuoteEmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload service.QuoteEmailJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("quote_email: invalid payload")
		return
	}

	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		log.Error().Str("user_id", payload.UserID).Msg("quote_email: bad user id")
		return
	}
	quoteID, err := uuid.Parse(payload.QuoteID)
	if err != nil {
		log.Error().Str("quote_id", payload.QuoteID).Msg("quote_email: bad quote id")
		return
	}

	quote, err := w.quotes.FindByID(ctx, userID, quoteID)
	if err != nil {
		log.Error().Err(err).Str("quote_id", payload.QuoteID).Msg("quote_email: quote not found")
		return
	}
	user, err := w.users.FindByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", payload.UserID).Msg("quote_email: user not found")
		return
	}

	businessName := user.BusinessName
	if businessName == "" {
		businessName = user.Name
	}

	pdfPath, err := infra.GenerateQuotePDF(quote, businessName, w.storagePath)
	if err != nil {
		log.Error().Err(err).Int("number", quote.Number).Msg("quote_email: pdf generation failed")
		return
	}

	subject := fmt.Sprintf("Quote #%d from %s", quote.Number, businessName)
	body := fmt.Sprintf(
		"Hello,\n\nPlease find attached quote #%d for a total of $%s.\n\nBest regards,\n%s",
		quote.Number, quote.Total.StringFixed(2), businessName,
	)

	err = w.breaker.Execute(func() error {
		return w.mailer.SendQuote(payload.Email, subject, body, pdfPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.Email).Int("number", quote.Number).
			Msg("quote_email: send failed")
		return
	}

	if err := w.quotes.MarkSent(ctx, quote.ID); err != nil {
		log.Error().Err(err).Int("number", quote.Number).Msg("quote_email: mark sent failed")
		return
	}
	log.Info().Str("to", payload.Email).Int("number", quote.Number).
		Msg("quote_email: quote delivered")
}
