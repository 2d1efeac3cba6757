package repositories

import (
	"context"
	"database/sql"
	"time"

	bookingentity "salon-booking-service/internal/module/booking/models/entity"
	"salon-booking-service/internal/module/checkout/models/entity"
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
	FindTransactionByIdempotencyKey(ctx context.Context, key string) (entity.Transaction, error)
	// FinalizeTransaction writes the transaction, its items and payments and
	// completes every referenced appointment in one database transaction.
	// When the idempotency key already exists nothing is written and the
	// stored transaction is returned with replayed set.
	FinalizeTransaction(ctx context.Context, trx entity.Transaction, items []entity.TransactionItem, payments []entity.Payment, appointmentIDs []string) (stored entity.Transaction, replayed bool, err error)
}

func New(db *sqlx.DB, log *otelzap.Logger, timeout time.Duration) Repositories {
	return &repositories{
		db:      db,
		log:     log,
		timeout: timeout,
	}
}

const (
	queryFindTransactionByKey = `SELECT id, idempotency_key, customer_id, staff_id, subtotal, tax_amount, tip_amount, total_amount, status, checkout_time FROM transactions WHERE idempotency_key = $1`

	queryInsertTransaction = `INSERT INTO transactions (id, idempotency_key, customer_id, staff_id, subtotal, tax_amount, tip_amount, total_amount, status, checkout_time) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT (idempotency_key) DO NOTHING`

	queryInsertItem = `INSERT INTO transaction_items (id, transaction_id, item_type, item_id, quantity, unit_price, discount, staff_id, appointment_id) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	queryInsertPayment = `INSERT INTO payments (id, transaction_id, method, amount) VALUES ($1, $2, $3, $4)`

	queryCompleteAppointment = `UPDATE appointments SET status = $1, transaction_id = $2, updated_at = $3 WHERE id = $4 AND status <> $5 AND transaction_id IS NULL`

	queryAppointmentSettlement = `SELECT status, transaction_id FROM appointments WHERE id = $1`
)

// FindTransactionByIdempotencyKey implements Repositories.
func (r *repositories) FindTransactionByIdempotencyKey(ctx context.Context, key string) (entity.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var trx entity.Transaction
	if err := r.db.GetContext(ctx, &trx, queryFindTransactionByKey, key); err != nil {
		return entity.Transaction{}, errors.FromStore(err, "transaction not found")
	}
	return trx, nil
}

// FinalizeTransaction implements Repositories.
func (r *repositories) FinalizeTransaction(ctx context.Context, trx entity.Transaction, items []entity.TransactionItem, payments []entity.Payment, appointmentIDs []string) (entity.Transaction, bool, error) {
	txCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTxx(txCtx, nil)
	if err != nil {
		r.log.Ctx(txCtx).Error("error starting transaction", zap.Error(err))
		return entity.Transaction{}, false, r.writeError(err, "error starting transaction")
	}

	res, err := tx.ExecContext(txCtx, queryInsertTransaction,
		trx.ID.String(), trx.IdempotencyKey, trx.CustomerID, trx.StaffID, trx.Subtotal, trx.TaxAmount,
		trx.TipAmount, trx.TotalAmount, string(trx.Status), trx.CheckoutTime)
	if err != nil {
		tx.Rollback()
		r.log.Ctx(txCtx).Error("error insert transaction", zap.Error(err))
		return entity.Transaction{}, false, r.writeError(err, "error insert transaction",
			errors.Reference{Column: "customer_id", Entity: "customer", ID: trx.CustomerID.String},
			errors.Reference{Column: "staff_id", Entity: "staff", ID: trx.StaffID})
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return entity.Transaction{}, false, r.writeError(err, "error insert transaction")
	}
	if affected == 0 {
		// lost the race on the idempotency key; the winner's row is the answer
		tx.Rollback()
		stored, err := r.FindTransactionByIdempotencyKey(ctx, trx.IdempotencyKey.String)
		if err != nil {
			return entity.Transaction{}, false, err
		}
		return stored, true, nil
	}

	for _, item := range items {
		_, err = tx.ExecContext(txCtx, queryInsertItem,
			item.ID.String(), trx.ID.String(), string(item.ItemType), item.ItemID, item.Quantity,
			item.UnitPrice, item.Discount, item.StaffID, item.AppointmentID)
		if err != nil {
			tx.Rollback()
			r.log.Ctx(txCtx).Error("error insert transaction item", zap.Error(err), zap.String("item_id", item.ItemID))
			return entity.Transaction{}, false, r.writeError(err, "error insert transaction item",
				errors.Reference{Column: "appointment_id", Entity: "appointment", ID: item.AppointmentID.String},
				errors.Reference{Column: "staff_id", Entity: "staff", ID: item.StaffID.String})
		}
	}

	for _, p := range payments {
		_, err = tx.ExecContext(txCtx, queryInsertPayment, p.ID.String(), trx.ID.String(), string(p.Method), p.Amount)
		if err != nil {
			tx.Rollback()
			r.log.Ctx(txCtx).Error("error insert payment", zap.Error(err), zap.String("method", string(p.Method)))
			return entity.Transaction{}, false, r.writeError(err, "error insert payment")
		}
	}

	now := time.Now().UTC()
	for _, id := range appointmentIDs {
		res, err := tx.ExecContext(txCtx, queryCompleteAppointment,
			string(bookingentity.AppointmentCompleted), trx.ID.String(), now, id, string(bookingentity.AppointmentCancelled))
		if err != nil {
			tx.Rollback()
			r.log.Ctx(txCtx).Error("error complete appointment", zap.Error(err), zap.String("appointment_id", id))
			return entity.Transaction{}, false, r.writeError(err, "error complete appointment",
				errors.Reference{Column: "transaction_id", Entity: "transaction", ID: trx.ID.String()})
		}
		affected, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return entity.Transaction{}, false, r.writeError(err, "error complete appointment")
		}
		if affected == 0 {
			err := r.unsettledError(txCtx, tx, id)
			tx.Rollback()
			return entity.Transaction{}, false, err
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Ctx(txCtx).Error("error committing transaction", zap.Error(err))
		return entity.Transaction{}, false, errors.StoreWriteFailure("error committing transaction")
	}

	return trx, false, nil
}

// unsettledError explains why an appointment could not be completed: it is
// missing, cancelled, or already linked to another transaction.
func (r *repositories) unsettledError(ctx context.Context, tx *sqlx.Tx, appointmentID string) error {
	var appt struct {
		Status        string         `db:"status"`
		TransactionID sql.NullString `db:"transaction_id"`
	}
	err := tx.GetContext(ctx, &appt, queryAppointmentSettlement, appointmentID)
	switch {
	case errors.Is(errors.FromStore(err, "appointment not found"), errors.CodeNotFound):
		return errors.ReferencedEntityMissing("appointment", appointmentID)
	case err != nil:
		r.log.Ctx(ctx).Error("error find appointment", zap.Error(err), zap.String("appointment_id", appointmentID))
		return r.writeError(err, "error complete appointment")
	case appt.Status == string(bookingentity.AppointmentCancelled):
		return errors.Conflict("appointment " + appointmentID + " is cancelled")
	default:
		return errors.Conflict("appointment " + appointmentID + " is already settled by transaction " + appt.TransactionID.String)
	}
}

func (r *repositories) writeError(err error, message string, refs ...errors.Reference) error {
	if missing := errors.MissingReference(err, refs...); missing != nil {
		return missing
	}
	classified := errors.FromStore(err, message)
	if errors.Is(classified, errors.CodeTransient) {
		return errors.StoreWriteFailure(message)
	}
	return classified
}
