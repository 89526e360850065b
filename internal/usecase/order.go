package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
	"github.com/polkiloo/orderrelay/internal/domain/repository"
	"github.com/polkiloo/orderrelay/internal/metrics"
)

// Step names reported on failures and rejections.
const (
	StepNormalize     = "normalize"
	StepStoreLocator  = "store-locator"
	StepValidateOrder = "validate-order"
	StepPriceOrder    = "price-order"
	StepPersistQuote  = "persist-quote"
	StepPlaceOrder    = "place-order"
)

const quoteGuidance = "Review the summary, then place the order with this token and confirm=true within 30 minutes."

// OrderGateway is the upstream order lifecycle.
type OrderGateway interface {
	ValidateOrder(ctx context.Context, req model.OrderRequest) (json.RawMessage, error)
	PriceOrder(ctx context.Context, validated json.RawMessage) (json.RawMessage, error)
	PlaceOrder(ctx context.Context, priced json.RawMessage) (json.RawMessage, error)
}

// IDGenerator issues upstream order ids and confirmation tokens.
type IDGenerator interface {
	OrderID() string
	Token() string
}

type uuidGenerator struct{}

// OrderID is 32 upper-case hex characters.
func (uuidGenerator) OrderID() string {
	id := uuid.New()
	return strings.ToUpper(fmt.Sprintf("%x", id[:]))
}

func (uuidGenerator) Token() string {
	return uuid.NewString()
}

// OrderUseCase runs the quote pipeline and places confirmed quotes.
type OrderUseCase struct {
	gateway OrderGateway
	stores  *StoreResolver
	quotes  repository.QuoteRepository
	logger  *slog.Logger
	metrics *metrics.Registry
	ids     IDGenerator
	now     func() time.Time
}

// OrderOption customises OrderUseCase.
type OrderOption func(*OrderUseCase)

// WithIDGenerator replaces the uuid based generator.
func WithIDGenerator(g IDGenerator) OrderOption {
	return func(u *OrderUseCase) { u.ids = g }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) OrderOption {
	return func(u *OrderUseCase) { u.now = now }
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	gateway OrderGateway,
	stores *StoreResolver,
	quotes repository.QuoteRepository,
	logger *slog.Logger,
	reg *metrics.Registry,
	opts ...OrderOption,
) *OrderUseCase {
	u := &OrderUseCase{
		gateway: gateway,
		stores:  stores,
		quotes:  quotes,
		logger:  logger,
		metrics: reg,
		ids:     uuidGenerator{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Quote builds, validates and prices an order and stores the priced draft under a fresh
// token. Nothing is placed. An upstream validation rejection is returned as an outcome
// with OK=false rather than an error.
func (u *OrderUseCase) Quote(ctx context.Context, in model.QuoteInput) (*model.QuoteOutcome, error) {
	p := newPipeline(model.StateBuilding)
	outcome, err := u.quote(ctx, p, in)
	u.metrics.Quotes.WithLabelValues(string(p.state)).Inc()
	if err != nil {
		u.logger.Warn("quote failed",
			slog.String("state", string(p.state)),
			slog.String("step", p.step),
			slog.Any("error", err),
		)
		return nil, err
	}
	return outcome, nil
}

func (u *OrderUseCase) quote(ctx context.Context, p *pipeline, in model.QuoteInput) (*model.QuoteOutcome, error) {
	p.attempt(StepNormalize)
	method, err := ParseServiceMethod(in.ServiceMethod)
	if err != nil {
		return nil, p.fail(err)
	}
	addr, err := BuildAddress(in.Address)
	if err != nil {
		return nil, p.fail(err)
	}
	contact, err := normalizeContact(in.Contact)
	if err != nil {
		return nil, p.fail(err)
	}
	items, err := ParseLineItems(in.Items)
	if err != nil {
		return nil, p.fail(err)
	}

	p.attempt(StepStoreLocator)
	store, err := u.stores.Resolve(ctx, addr, method)
	if err != nil {
		return nil, p.fail(err)
	}
	if err := p.enter(model.StateStoreResolved); err != nil {
		return nil, p.fail(err)
	}

	p.attempt(StepValidateOrder)
	req := model.NewOrderRequest(u.ids.OrderID(), store.StoreID, method, addr, contact, items)
	validated, err := u.gateway.ValidateOrder(ctx, req)
	if err != nil {
		return nil, p.fail(err)
	}
	if err := p.enter(model.StateValidated); err != nil {
		return nil, p.fail(err)
	}
	if rejected := validationRejection(validated); rejected != nil {
		if err := p.enter(model.StateValidationRejected); err != nil {
			return nil, p.fail(err)
		}
		rejected.State = p.state
		rejected.Step = p.step
		return rejected, nil
	}

	// pricing works on the validated order, which may carry upstream corrections
	p.attempt(StepPriceOrder)
	priced, err := u.gateway.PriceOrder(ctx, validated)
	if err != nil {
		return nil, p.fail(err)
	}
	if err := p.enter(model.StatePriced); err != nil {
		return nil, p.fail(err)
	}

	p.attempt(StepPersistQuote)
	quote := &model.Quote{
		Token:         u.ids.Token(),
		CreatedAt:     u.now(),
		StoreID:       store.StoreID,
		ServiceMethod: method,
		StoreHint:     store.Hint,
		PricedDraft:   priced,
	}
	if err := u.quotes.Put(ctx, quote); err != nil {
		return nil, p.fail(err)
	}
	if err := p.enter(model.StateQuoted); err != nil {
		return nil, p.fail(err)
	}

	summary := SummarizeQuote(priced)
	hint := store.Hint
	return &model.QuoteOutcome{
		OK:       true,
		State:    p.state,
		Token:    quote.Token,
		Summary:  &summary,
		Store:    &hint,
		Guidance: quoteGuidance,
	}, nil
}

// validationRejection returns a rejection outcome when the validated order carries a
// non-zero Status. A missing Status counts as success.
func validationRejection(validated json.RawMessage) *model.QuoteOutcome {
	doc := gjson.ParseBytes(validated)
	status := orderField(doc, "Status")
	if !status.Exists() || status.Type == gjson.Null {
		return nil
	}
	if status.Type == gjson.Number && status.Num == 0 {
		return nil
	}
	if status.Type == gjson.String && strings.TrimSpace(status.Str) == "0" {
		return nil
	}

	message := firstPresent(doc, "Message", "Order.Message").String()
	if message == "" {
		message = firstPresent(doc, "StatusItems.0.Code", "Order.StatusItems.0.Code").String()
	}
	if message == "" {
		message = "order rejected by upstream validation"
	}
	return &model.QuoteOutcome{
		OK:      false,
		Status:  status.Value(),
		Message: message,
		Details: validated,
	}
}

// Confirmed reports whether v is the boolean true. Truthy strings and numbers do not count.
func Confirmed(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// Place submits the stored priced draft for token. The quote is consumed before the
// upstream call, so a token can be placed at most once whatever the upstream outcome.
func (u *OrderUseCase) Place(ctx context.Context, token string, confirm any) (*model.PlacementOutcome, error) {
	if !Confirmed(confirm) {
		u.metrics.Placements.WithLabelValues("unconfirmed").Inc()
		return nil, domainErrors.ErrConfirmationRequired
	}
	token, err := AssertRequired("orderToken", token)
	if err != nil {
		return nil, err
	}

	quote, err := u.quotes.Take(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.metrics.Placements.WithLabelValues("unknown_token").Inc()
			return nil, domainErrors.ErrUnknownOrExpiredToken
		}
		return nil, fmt.Errorf("load quote: %w", err)
	}

	if quote.Expired(u.now()) {
		u.metrics.Placements.WithLabelValues("expired").Inc()
		return nil, domainErrors.ErrQuoteExpired
	}

	p := newPipeline(model.StateQuoted)
	if err := p.enter(model.StateConfirmed); err != nil {
		return nil, err
	}

	p.attempt(StepPlaceOrder)
	result, err := u.gateway.PlaceOrder(ctx, quote.PricedDraft)
	if err != nil {
		u.metrics.Placements.WithLabelValues("failed").Inc()
		u.logger.Error("place order failed",
			slog.String("store_id", quote.StoreID),
			slog.Any("error", err),
		)
		return nil, p.fail(err)
	}
	if err := p.enter(model.StatePlaced); err != nil {
		return nil, p.fail(err)
	}

	u.metrics.Placements.WithLabelValues("placed").Inc()
	u.logger.Info("order placed", slog.String("store_id", quote.StoreID))
	return &model.PlacementOutcome{
		OK:      true,
		State:   p.state,
		Token:   token,
		Summary: SummarizeQuote(quote.PricedDraft),
		Result:  result,
	}, nil
}

// Describe returns a stored quote without consuming it. An expired quote is deleted.
func (u *OrderUseCase) Describe(ctx context.Context, token string) (*model.QuoteView, error) {
	token, err := AssertRequired("orderToken", token)
	if err != nil {
		return nil, err
	}
	quote, err := u.quotes.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnknownOrExpiredToken
		}
		return nil, fmt.Errorf("load quote: %w", err)
	}
	if quote.Expired(u.now()) {
		if err := u.quotes.Delete(ctx, token); err != nil {
			u.logger.Warn("failed to delete expired quote", slog.Any("error", err))
		}
		return nil, domainErrors.ErrQuoteExpired
	}
	return &model.QuoteView{
		Token:     quote.Token,
		Summary:   SummarizeQuote(quote.PricedDraft),
		Store:     quote.StoreHint,
		ExpiresAt: quote.CreatedAt.Add(model.QuoteTTL),
	}, nil
}

// Cancel discards a quote. Unknown tokens are not an error.
func (u *OrderUseCase) Cancel(ctx context.Context, token string) error {
	token, err := AssertRequired("orderToken", token)
	if err != nil {
		return err
	}
	if err := u.quotes.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// PurgeExpired removes quotes older than the confirmation window.
func (u *OrderUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := u.quotes.PurgeExpired(ctx, u.now().Add(-model.QuoteTTL))
	if err != nil {
		return 0, fmt.Errorf("purge quotes: %w", err)
	}
	u.metrics.QuotesPurged.Add(float64(n))
	return n, nil
}

func normalizeContact(c model.Contact) (model.Contact, error) {
	var (
		out model.Contact
		err error
	)
	if out.FirstName, err = AssertRequired("firstName", c.FirstName); err != nil {
		return model.Contact{}, err
	}
	if out.LastName, err = AssertRequired("lastName", c.LastName); err != nil {
		return model.Contact{}, err
	}
	if out.Email, err = AssertRequired("email", c.Email); err != nil {
		return model.Contact{}, err
	}
	if out.Phone, err = AssertRequired("phone", c.Phone); err != nil {
		return model.Contact{}, err
	}
	return out, nil
}
