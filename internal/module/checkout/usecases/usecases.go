package usecases

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"salon-booking-service/config"
	"salon-booking-service/internal/module/checkout/loyalty"
	"salon-booking-service/internal/module/checkout/models/entity"
	"salon-booking-service/internal/module/checkout/models/request"
	"salon-booking-service/internal/module/checkout/models/response"
	"salon-booking-service/internal/module/checkout/repositories"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/messagestream"
	"salon-booking-service/internal/pkg/money"
	"salon-booking-service/internal/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// TaskEnqueuer is the part of *asynq.Client the finalizer uses.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type usecase struct {
	repo      repositories.Repositories
	loyalty   loyalty.Client
	tasks     TaskEnqueuer
	publisher message.Publisher
	log       *otelzap.Logger
	cfg       config.CheckoutConfig
}

type Usecase interface {
	// Finalize turns a cart and its payments into a committed sale. It is
	// all or nothing and safe to repeat under the same idempotency key.
	Finalize(ctx context.Context, req request.Finalize) (response.Finalized, error)
	ConsumeLoyaltyAccrual(ctx context.Context, t *asynq.Task) error
}

func New(repo repositories.Repositories, loyaltyClient loyalty.Client, tasks TaskEnqueuer, publisher message.Publisher, log *otelzap.Logger, cfg config.CheckoutConfig) Usecase {
	return &usecase{
		repo:      repo,
		loyalty:   loyaltyClient,
		tasks:     tasks,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
	}
}

// totals is the money side of a cart, all in cents.
type totals struct {
	subtotal money.Cents
	tax      money.Cents
	tip      money.Cents
	total    money.Cents
	paid     money.Cents
}

func (u *usecase) computeTotals(req request.Finalize) (totals, error) {
	var t totals
	for i, item := range req.CartItems {
		line := money.Line(money.FromDecimal(item.UnitPrice), item.Quantity, money.FromDecimal(item.Discount))
		if line < 0 {
			return totals{}, errors.BadRequest(fmt.Sprintf("cart item %d: discount exceeds line amount", i))
		}
		t.subtotal += line
	}
	t.tax = t.subtotal.ApplyRate(u.cfg.TaxRate)
	t.tip = money.FromDecimal(req.TipAmount)
	t.total = money.Sum(t.subtotal, t.tax, t.tip)

	for _, p := range req.PaymentMethods {
		t.paid += money.FromDecimal(p.Amount)
	}
	if !money.WithinTolerance(t.paid, t.total, money.Cents(u.cfg.PaymentToleranceCents)) {
		return totals{}, errors.AmountMismatch(int64(t.total), int64(t.paid))
	}

	for _, p := range req.PaymentMethods {
		if !entity.PaymentMethod(p.Method).Valid() {
			return totals{}, errors.InvalidPaymentMethod(p.Method)
		}
	}
	return t, nil
}

func (u *usecase) Finalize(ctx context.Context, req request.Finalize) (response.Finalized, error) {
	span, ctx := apm.StartSpan(ctx, "Finalize", "usecase")
	defer span.End()

	t, err := u.computeTotals(req)
	if err != nil {
		return response.Finalized{}, err
	}

	if req.IdempotencyKey != "" {
		existing, err := u.repo.FindTransactionByIdempotencyKey(ctx, req.IdempotencyKey)
		switch {
		case err == nil:
			u.log.Ctx(ctx).Info("finalize replayed", zap.String("idempotency_key", req.IdempotencyKey), zap.String("transaction_id", existing.ID.String()))
			return toResponse(existing, true), nil
		case !errors.Is(err, errors.CodeNotFound):
			return response.Finalized{}, storeWriteFailure(err)
		}
	}

	trx := entity.Transaction{
		ID:             uuid.New(),
		IdempotencyKey: nullable(req.IdempotencyKey),
		CustomerID:     nullable(req.CustomerID),
		StaffID:        req.StaffID,
		Subtotal:       t.subtotal.Decimal(),
		TaxAmount:      t.tax.Decimal(),
		TipAmount:      t.tip.Decimal(),
		TotalAmount:    t.total.Decimal(),
		Status:         entity.TransactionPaid,
		CheckoutTime:   time.Now().UTC(),
	}

	items := make([]entity.TransactionItem, 0, len(req.CartItems))
	var appointmentIDs []string
	seen := make(map[string]bool)
	addAppointment := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		appointmentIDs = append(appointmentIDs, id)
	}
	for _, item := range req.CartItems {
		staffID := item.StaffID
		if staffID == "" {
			staffID = req.StaffID
		}
		items = append(items, entity.TransactionItem{
			ID:            uuid.New(),
			TransactionID: trx.ID,
			ItemType:      entity.ItemType(item.ItemType),
			ItemID:        item.ItemID,
			Quantity:      item.Quantity,
			UnitPrice:     money.FromDecimal(item.UnitPrice).Decimal(),
			Discount:      money.FromDecimal(item.Discount).Decimal(),
			StaffID:       nullable(staffID),
			AppointmentID: nullable(item.AppointmentID),
		})
		addAppointment(item.AppointmentID)
	}
	addAppointment(req.AppointmentID)

	payments := make([]entity.Payment, 0, len(req.PaymentMethods))
	for _, p := range req.PaymentMethods {
		payments = append(payments, entity.Payment{
			ID:            uuid.New(),
			TransactionID: trx.ID,
			Method:        entity.PaymentMethod(p.Method),
			Amount:        money.FromDecimal(p.Amount).Decimal(),
		})
	}

	stored, replayed, err := u.repo.FinalizeTransaction(ctx, trx, items, payments, appointmentIDs)
	if err != nil {
		u.log.Ctx(ctx).Error("error finalize transaction", zap.Error(err), zap.String("staff_id", req.StaffID))
		return response.Finalized{}, storeWriteFailure(err)
	}
	if replayed {
		return toResponse(stored, true), nil
	}

	if req.CustomerID != "" {
		u.accrueLoyalty(ctx, req.CustomerID, stored.ID.String(), t.subtotal)
	}

	event := response.TransactionFinalized{
		TransactionID:  stored.ID.String(),
		CustomerID:     req.CustomerID,
		StaffID:        req.StaffID,
		TotalAmount:    stored.TotalAmount,
		AppointmentIDs: appointmentIDs,
	}
	if err := messagestream.PublishJSON(u.publisher, messagestream.TopicTransactionFinalized, event); err != nil {
		u.log.Ctx(ctx).Error("error publish transaction finalized", zap.Error(err), zap.String("transaction_id", stored.ID.String()))
	}

	return toResponse(stored, false), nil
}

// accrueLoyalty never fails the sale. A failed call is handed to the task
// queue, which retries it with backoff.
func (u *usecase) accrueLoyalty(ctx context.Context, customerID, transactionID string, amount money.Cents) {
	err := u.loyalty.Accrue(ctx, customerID, transactionID, amount)
	if err == nil {
		return
	}
	u.log.Ctx(ctx).Error("error accrue loyalty points, queueing retry", zap.Error(err), zap.String("transaction_id", transactionID))

	payload, err := json.Marshal(request.LoyaltyAccrual{CustomerID: customerID, TransactionID: transactionID, AmountCents: int64(amount)})
	if err != nil {
		u.log.Ctx(ctx).Error("error marshal loyalty task", zap.Error(err))
		return
	}
	task := asynq.NewTask(scheduler.TypeAccrueLoyaltyPoints, payload)
	if _, err := u.tasks.EnqueueContext(ctx, task, asynq.MaxRetry(u.cfg.LoyaltyMaxRetry), asynq.TaskID("loyalty:"+transactionID)); err != nil {
		u.log.Ctx(ctx).Error("error enqueue loyalty task", zap.Error(err), zap.String("transaction_id", transactionID))
	}
}

func (u *usecase) ConsumeLoyaltyAccrual(ctx context.Context, t *asynq.Task) error {
	var req request.LoyaltyAccrual
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		u.log.Ctx(ctx).Error("error unmarshal loyalty task", zap.Error(err))
		return fmt.Errorf("unmarshal loyalty task: %v: %w", err, asynq.SkipRetry)
	}

	if err := u.loyalty.Accrue(ctx, req.CustomerID, req.TransactionID, money.Cents(req.AmountCents)); err != nil {
		if !errors.IsRetryable(err) {
			u.log.Ctx(ctx).Error("loyalty accrual rejected", zap.Error(err), zap.String("transaction_id", req.TransactionID))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

// storeWriteFailure keeps domain errors and turns transient ones into the
// retryable write failure callers can repeat under the same key.
func storeWriteFailure(err error) error {
	if errors.Is(err, errors.CodeTransient) {
		custom, _ := errors.As(err)
		return errors.StoreWriteFailure(custom.Message)
	}
	return err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toResponse(trx entity.Transaction, replayed bool) response.Finalized {
	return response.Finalized{
		TransactionID: trx.ID.String(),
		Replayed:      replayed,
		Subtotal:      trx.Subtotal,
		TaxAmount:     trx.TaxAmount,
		TipAmount:     trx.TipAmount,
		TotalAmount:   trx.TotalAmount,
	}
}
