package repositories

import (
	"context"
	"time"

	"salon-booking-service/internal/module/terminal/models/entity"
	"salon-booking-service/internal/pkg/errors"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type repositories struct {
	db      *sqlx.DB
	log     *otelzap.Logger
	timeout time.Duration
}

type Repositories interface {
	FindByID(ctx context.Context, id string) (entity.TerminalCheckout, error)
	// Register stores the cart snapshot for a checkout. A checkout that is
	// already final cannot be registered again.
	Register(ctx context.Context, checkout entity.TerminalCheckout) error
	// Insert stores a checkout the first time it is seen and leaves an
	// existing row untouched.
	Insert(ctx context.Context, checkout entity.TerminalCheckout) error
	// AdvanceStatus writes checkout only while the stored status is still
	// from. It reports whether the row was updated.
	AdvanceStatus(ctx context.Context, from entity.CheckoutStatus, checkout entity.TerminalCheckout) (bool, error)
	RecordFailure(ctx context.Context, id, message string) error
}

func New(db *sqlx.DB, log *otelzap.Logger, timeout time.Duration) Repositories {
	return &repositories{
		db:      db,
		log:     log,
		timeout: timeout,
	}
}

const (
	queryFindCheckout = `SELECT id, device_id, amount, tip_amount, currency, status, reference_id, cancel_reason, transaction_id, appointment_id, customer_id, staff_id, cart_items, last_error, created_at, updated_at FROM terminal_checkouts WHERE id = $1`

	queryRegisterCheckout = `INSERT INTO terminal_checkouts (id, device_id, currency, status, appointment_id, customer_id, staff_id, cart_items, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO UPDATE SET device_id = COALESCE(EXCLUDED.device_id, terminal_checkouts.device_id), appointment_id = EXCLUDED.appointment_id, customer_id = EXCLUDED.customer_id, staff_id = EXCLUDED.staff_id, cart_items = EXCLUDED.cart_items, updated_at = EXCLUDED.created_at WHERE terminal_checkouts.status NOT IN ($10, $11)`

	queryInsertCheckout = `INSERT INTO terminal_checkouts (id, device_id, amount, tip_amount, currency, status, reference_id, cancel_reason, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (id) DO NOTHING`

	queryAdvanceStatus = `UPDATE terminal_checkouts SET status = $1, device_id = COALESCE($2, device_id), amount = $3, tip_amount = $4, currency = $5, reference_id = COALESCE($6, reference_id), cancel_reason = $7, transaction_id = COALESCE($8, transaction_id), last_error = NULL, updated_at = $9 WHERE id = $10 AND status = $11`

	queryRecordFailure = `UPDATE terminal_checkouts SET last_error = $1, updated_at = $2 WHERE id = $3`
)

// FindByID implements Repositories.
func (r *repositories) FindByID(ctx context.Context, id string) (entity.TerminalCheckout, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var checkout entity.TerminalCheckout
	if err := r.db.GetContext(ctx, &checkout, queryFindCheckout, id); err != nil {
		return entity.TerminalCheckout{}, errors.FromStore(err, "terminal checkout not found")
	}
	return checkout, nil
}

// Register implements Repositories.
func (r *repositories) Register(ctx context.Context, c entity.TerminalCheckout) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, queryRegisterCheckout,
		c.ID, c.DeviceID, c.Currency, string(c.Status), c.AppointmentID, c.CustomerID, c.StaffID, c.CartItems, c.CreatedAt,
		string(entity.CheckoutCompleted), string(entity.CheckoutCanceled))
	if err != nil {
		r.log.Ctx(ctx).Error("error register terminal checkout", zap.Error(err), zap.String("checkout_id", c.ID))
		if missing := errors.MissingReference(err, errors.Reference{Column: "appointment_id", Entity: "appointment", ID: c.AppointmentID.String}); missing != nil {
			return missing
		}
		return errors.FromStore(err, "error register terminal checkout")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.FromStore(err, "error register terminal checkout")
	}
	if affected == 0 {
		return errors.Conflict("terminal checkout " + c.ID + " is already final")
	}
	return nil
}

// Insert implements Repositories.
func (r *repositories) Insert(ctx context.Context, c entity.TerminalCheckout) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, queryInsertCheckout,
		c.ID, c.DeviceID, c.Amount, c.TipAmount, c.Currency, string(c.Status), c.ReferenceID, c.CancelReason, c.CreatedAt)
	if err != nil {
		r.log.Ctx(ctx).Error("error insert terminal checkout", zap.Error(err), zap.String("checkout_id", c.ID))
		return errors.FromStore(err, "error insert terminal checkout")
	}
	return nil
}

// AdvanceStatus implements Repositories.
func (r *repositories) AdvanceStatus(ctx context.Context, from entity.CheckoutStatus, c entity.TerminalCheckout) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, queryAdvanceStatus,
		string(c.Status), c.DeviceID, c.Amount, c.TipAmount, c.Currency, c.ReferenceID, c.CancelReason, c.TransactionID,
		time.Now().UTC(), c.ID, string(from))
	if err != nil {
		r.log.Ctx(ctx).Error("error advance terminal checkout", zap.Error(err), zap.String("checkout_id", c.ID))
		return false, errors.FromStore(err, "error advance terminal checkout")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.FromStore(err, "error advance terminal checkout")
	}
	return affected == 1, nil
}

// RecordFailure implements Repositories.
func (r *repositories) RecordFailure(ctx context.Context, id, message string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, queryRecordFailure, message, time.Now().UTC(), id); err != nil {
		r.log.Ctx(ctx).Error("error record terminal checkout failure", zap.Error(err), zap.String("checkout_id", id))
		return errors.FromStore(err, "error record terminal checkout failure")
	}
	return nil
}
