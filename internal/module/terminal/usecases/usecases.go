package usecases

import (
	"context"
	"database/sql"
	"strings"
	"time"

	checkoutentity "salon-booking-service/internal/module/checkout/models/entity"
	checkoutrequest "salon-booking-service/internal/module/checkout/models/request"
	checkoutresponse "salon-booking-service/internal/module/checkout/models/response"
	"salon-booking-service/internal/module/terminal/models/entity"
	"salon-booking-service/internal/module/terminal/models/request"
	"salon-booking-service/internal/module/terminal/models/response"
	"salon-booking-service/internal/module/terminal/repositories"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/messagestream"
	"salon-booking-service/internal/pkg/money"
	"salon-booking-service/internal/pkg/redis"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// Checkout events arrive as "checkout.updated" or, from the terminal API,
// as "terminal.checkout.updated".
func isCheckoutEvent(eventType string) bool {
	return strings.HasPrefix(strings.TrimPrefix(eventType, "terminal."), "checkout.")
}

// Finalizer commits a sale. The checkout usecase implements it.
type Finalizer interface {
	Finalize(ctx context.Context, req checkoutrequest.Finalize) (checkoutresponse.Finalized, error)
}

type usecase struct {
	repo            repositories.Repositories
	finalizer       Finalizer
	locker          redis.Locker
	publisher       message.Publisher
	log             *otelzap.Logger
	defaultCurrency string
}

type Usecase interface {
	// Reconcile applies one terminal event. The returned error is set only
	// when the event was not applied and should be delivered again, or when
	// the event itself is malformed.
	Reconcile(ctx context.Context, event request.WebhookEvent) (response.WebhookAck, error)
	RegisterCheckout(ctx context.Context, req request.RegisterCheckout) (response.TerminalCheckout, error)
}

func New(repo repositories.Repositories, finalizer Finalizer, locker redis.Locker, publisher message.Publisher, log *otelzap.Logger, defaultCurrency string) Usecase {
	return &usecase{
		repo:            repo,
		finalizer:       finalizer,
		locker:          locker,
		publisher:       publisher,
		log:             log,
		defaultCurrency: defaultCurrency,
	}
}

func (u *usecase) Reconcile(ctx context.Context, event request.WebhookEvent) (response.WebhookAck, error) {
	span, ctx := apm.StartSpan(ctx, "Reconcile", "usecase")
	defer span.End()

	if !isCheckoutEvent(event.Type) {
		u.log.Ctx(ctx).Info("ignoring webhook event", zap.String("type", event.Type), zap.String("event_id", event.EventID))
		return response.WebhookAck{Success: true}, nil
	}

	c := event.Data.Object.Checkout
	if c.ID == "" {
		return rejected(errors.BadRequest("checkout id is missing"))
	}
	incoming := entity.CheckoutStatus(c.Status)
	if incoming.Rank() == 0 {
		// redelivery cannot fix it, so it is acknowledged and left alone
		u.log.Ctx(ctx).Warn("ignoring unknown checkout status",
			zap.String("checkout_id", c.ID), zap.String("status", c.Status), zap.String("event_id", event.EventID))
		return ignored(errors.BadRequest("unknown checkout status " + c.Status))
	}

	unlock, err := u.locker.Lock(ctx, c.ID)
	if err != nil {
		u.log.Ctx(ctx).Error("error lock terminal checkout", zap.Error(err), zap.String("checkout_id", c.ID))
		return rejected(errors.Transient("checkout is being processed"))
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			u.log.Ctx(ctx).Warn("error unlock terminal checkout", zap.Error(err), zap.String("checkout_id", c.ID))
		}
	}()

	inserted := false
	stored, err := u.repo.FindByID(ctx, c.ID)
	switch {
	case errors.Is(err, errors.CodeNotFound):
		stored = u.fromEvent(c, entity.CheckoutCreated)
		if err := u.repo.Insert(ctx, stored); err != nil {
			return rejected(err)
		}
		inserted = true
	case err != nil:
		return rejected(err)
	}

	if inserted && incoming == entity.CheckoutCreated {
		return response.WebhookAck{Success: true}, nil
	}
	if incoming.Rank() <= stored.Status.Rank() {
		u.log.Ctx(ctx).Info("discarding stale terminal event",
			zap.String("checkout_id", c.ID), zap.String("stored", string(stored.Status)), zap.String("incoming", string(incoming)))
		return response.WebhookAck{Success: true, Duplicate: true}, nil
	}

	next := u.merge(stored, c, incoming)
	if incoming == entity.CheckoutCompleted {
		return u.complete(ctx, event, stored, next)
	}

	advanced, err := u.repo.AdvanceStatus(ctx, stored.Status, next)
	if err != nil {
		return rejected(err)
	}
	if !advanced {
		return response.WebhookAck{Success: true, Duplicate: true}, nil
	}
	return response.WebhookAck{Success: true}, nil
}

// complete finalizes the sale behind a COMPLETED event. The stored status
// only becomes COMPLETED once the sale is committed, so a redelivery after
// any failure runs Finalize again under the same idempotency key.
func (u *usecase) complete(ctx context.Context, event request.WebhookEvent, stored, next entity.TerminalCheckout) (response.WebhookAck, error) {
	var items []checkoutrequest.CartItem
	if len(stored.CartItems) > 0 {
		if err := json.Unmarshal(stored.CartItems, &items); err != nil {
			u.log.Ctx(ctx).Error("error unmarshal cart snapshot", zap.Error(err), zap.String("checkout_id", stored.ID))
		}
	}
	if len(items) == 0 || !stored.StaffID.Valid {
		return u.fail(ctx, event, stored.ID, errors.ReferencedEntityMissing("cart snapshot", stored.ID))
	}

	amount := money.Cents(event.Data.Object.Checkout.AmountMoney.Amount)
	tip := money.Cents(event.Data.Object.Checkout.TipMoney.Amount)
	finalized, err := u.finalizer.Finalize(ctx, checkoutrequest.Finalize{
		CustomerID: stored.CustomerID.String,
		StaffID:    stored.StaffID.String,
		CartItems:  items,
		PaymentMethods: []checkoutrequest.PaymentInstruction{
			{Method: string(checkoutentity.PaymentCredit), Amount: (amount + tip).Decimal()},
		},
		TipAmount:      tip.Decimal(),
		IdempotencyKey: stored.ID,
		AppointmentID:  stored.AppointmentID.String,
	})
	if err != nil {
		if errors.IsRetryable(err) {
			if recordErr := u.repo.RecordFailure(ctx, stored.ID, err.Error()); recordErr != nil {
				u.log.Ctx(ctx).Error("error record failure", zap.Error(recordErr), zap.String("checkout_id", stored.ID))
			}
			return rejected(err)
		}
		return u.fail(ctx, event, stored.ID, err)
	}

	next.TransactionID = sql.NullString{String: finalized.TransactionID, Valid: true}
	advanced, err := u.repo.AdvanceStatus(ctx, stored.Status, next)
	if err != nil {
		return rejected(err)
	}
	if !advanced {
		u.log.Ctx(ctx).Warn("terminal checkout moved while locked", zap.String("checkout_id", stored.ID))
	}

	u.log.Ctx(ctx).Info("terminal checkout completed",
		zap.String("checkout_id", stored.ID), zap.String("transaction_id", finalized.TransactionID), zap.Bool("replayed", finalized.Replayed))
	return response.WebhookAck{Success: true}, nil
}

// fail acknowledges an event that can never succeed as delivered. The
// error is kept on the row and the event is parked on the poison queue for
// an operator to fix and replay.
func (u *usecase) fail(ctx context.Context, event request.WebhookEvent, checkoutID string, err error) (response.WebhookAck, error) {
	u.log.Ctx(ctx).Error("terminal checkout failed", zap.Error(err), zap.String("checkout_id", checkoutID))

	if recordErr := u.repo.RecordFailure(ctx, checkoutID, err.Error()); recordErr != nil {
		u.log.Ctx(ctx).Error("error record failure", zap.Error(recordErr), zap.String("checkout_id", checkoutID))
	}

	poisoned := messagestream.PoisonedQueue{
		TopicTarget: messagestream.TopicTerminalReplay,
		ErrorMsg:    err.Error(),
		Payload:     event,
	}
	if pubErr := messagestream.PublishJSON(u.publisher, messagestream.TopicPoisonedQueue, poisoned); pubErr != nil {
		u.log.Ctx(ctx).Error("error publish to poison queue", zap.Error(pubErr), zap.String("checkout_id", checkoutID))
	}

	ack := response.WebhookAck{Success: false, Message: err.Error()}
	if custom, ok := errors.As(err); ok {
		ack.ErrorCode = custom.Code
		ack.Message = custom.Message
	}
	return ack, nil
}

// ignored acknowledges an event that is well formed but carries nothing
// this service can apply.
func ignored(err error) (response.WebhookAck, error) {
	ack, _ := rejected(err)
	ack.Retryable = false
	return ack, nil
}

func rejected(err error) (response.WebhookAck, error) {
	ack := response.WebhookAck{Success: false, Retryable: errors.IsRetryable(err), Message: err.Error()}
	if custom, ok := errors.As(err); ok {
		ack.ErrorCode = custom.Code
		ack.Message = custom.Message
	}
	return ack, err
}

func (u *usecase) fromEvent(c request.Checkout, status entity.CheckoutStatus) entity.TerminalCheckout {
	return u.merge(entity.TerminalCheckout{ID: c.ID, CreatedAt: time.Now().UTC()}, c, status)
}

func (u *usecase) merge(stored entity.TerminalCheckout, c request.Checkout, status entity.CheckoutStatus) entity.TerminalCheckout {
	next := stored
	next.Status = status
	next.Amount = money.Cents(c.AmountMoney.Amount).Decimal()
	next.TipAmount = money.Cents(c.TipMoney.Amount).Decimal()
	next.Currency = c.AmountMoney.Currency
	if next.Currency == "" {
		next.Currency = u.defaultCurrency
	}
	if c.DeviceOptions.DeviceID != "" {
		next.DeviceID = sql.NullString{String: c.DeviceOptions.DeviceID, Valid: true}
	}
	if c.ReferenceID != "" {
		next.ReferenceID = sql.NullString{String: c.ReferenceID, Valid: true}
	}
	next.CancelReason = sql.NullString{String: c.CancelReason, Valid: c.CancelReason != ""}
	return next
}

func (u *usecase) RegisterCheckout(ctx context.Context, req request.RegisterCheckout) (response.TerminalCheckout, error) {
	span, ctx := apm.StartSpan(ctx, "RegisterCheckout", "usecase")
	defer span.End()

	cart, err := json.Marshal(req.CartItems)
	if err != nil {
		return response.TerminalCheckout{}, errors.BadRequest("error encode cart items")
	}

	currency := req.Currency
	if currency == "" {
		currency = u.defaultCurrency
	}

	unlock, err := u.locker.Lock(ctx, req.CheckoutID)
	if err != nil {
		u.log.Ctx(ctx).Error("error lock terminal checkout", zap.Error(err), zap.String("checkout_id", req.CheckoutID))
		return response.TerminalCheckout{}, errors.Transient("checkout is being processed")
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			u.log.Ctx(ctx).Warn("error unlock terminal checkout", zap.Error(err), zap.String("checkout_id", req.CheckoutID))
		}
	}()

	err = u.repo.Register(ctx, entity.TerminalCheckout{
		ID:            req.CheckoutID,
		DeviceID:      nullable(req.DeviceID),
		Currency:      currency,
		Status:        entity.CheckoutCreated,
		AppointmentID: nullable(req.AppointmentID),
		CustomerID:    nullable(req.CustomerID),
		StaffID:       nullable(req.StaffID),
		CartItems:     cart,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return response.TerminalCheckout{}, err
	}

	stored, err := u.repo.FindByID(ctx, req.CheckoutID)
	if err != nil {
		return response.TerminalCheckout{}, err
	}
	return response.TerminalCheckout{
		CheckoutID:    stored.ID,
		Status:        string(stored.Status),
		TransactionID: stored.TransactionID.String,
	}, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
