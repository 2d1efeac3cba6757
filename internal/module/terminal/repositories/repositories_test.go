package repositories_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"salon-booking-service/internal/module/terminal/models/entity"
	"salon-booking-service/internal/module/terminal/repositories"
	"salon-booking-service/internal/pkg/errors"
	log_internal "salon-booking-service/internal/pkg/log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlxmock "github.com/zhashkevych/go-sqlxmock"
)

var (
	mock sqlxmock.Sqlmock
	dbx  *sqlx.DB
	now  = time.Date(2026, 3, 14, 15, 4, 5, 0, time.UTC)
)

func setup() repositories.Repositories {
	dbx, mock, _ = sqlxmock.Newx()
	return repositories.New(dbx, log_internal.Nop(), time.Second)
}

func registered() entity.TerminalCheckout {
	return entity.TerminalCheckout{
		ID:        "chk_1",
		DeviceID:  sql.NullString{String: "device-1", Valid: true},
		Currency:  "USD",
		Status:    entity.CheckoutCreated,
		StaffID:   sql.NullString{String: "staff-1", Valid: true},
		CartItems: []byte(`[{"item_type":"service","item_id":"svc-cut","quantity":1,"unit_price":50}]`),
		CreatedAt: now,
	}
}

var registerCheckout = regexp.QuoteMeta("INSERT INTO terminal_checkouts (id, device_id, currency, status")

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		c := registered()

		mock.ExpectExec(registerCheckout).
			WithArgs("chk_1", "device-1", "USD", "CREATED", nil, nil, "staff-1", c.CartItems, now, "COMPLETED", "CANCELED").
			WillReturnResult(sqlxmock.NewResult(1, 1))

		require.NoError(t, repo.Register(context.Background(), c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("final checkout", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()

		mock.ExpectExec(registerCheckout).WillReturnResult(sqlxmock.NewResult(0, 0))

		err := repo.Register(context.Background(), registered())

		assert.True(t, errors.Is(err, errors.CodeConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown appointment", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		c := registered()
		c.AppointmentID = sql.NullString{String: "ghost", Valid: true}

		mock.ExpectExec(registerCheckout).WillReturnError(&pq.Error{Code: "23503"})

		err := repo.Register(context.Background(), c)

		custom, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.CodeReferencedEntityMissing, custom.Code)
		assert.Equal(t, "ghost", custom.Details["id"])
	})
}

func TestAdvanceStatus(t *testing.T) {
	advance := regexp.QuoteMeta("UPDATE terminal_checkouts SET status = $1")

	t.Run("advanced", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()
		c := registered()
		c.Status = entity.CheckoutCompleted
		c.Amount = decimal.New(5250, -2)
		c.TransactionID = sql.NullString{String: "trx-1", Valid: true}

		mock.ExpectExec(advance).
			WithArgs("COMPLETED", "device-1", "52.5", "0", "USD", nil, nil, "trx-1", sqlxmock.AnyArg(), "chk_1", "IN_PROGRESS").
			WillReturnResult(sqlxmock.NewResult(0, 1))

		ok, err := repo.AdvanceStatus(context.Background(), entity.CheckoutInProgress, c)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost the race", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()

		mock.ExpectExec(advance).WillReturnResult(sqlxmock.NewResult(0, 0))

		ok, err := repo.AdvanceStatus(context.Background(), entity.CheckoutCreated, registered())

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store down", func(t *testing.T) {
		repo := setup()
		defer dbx.Close()

		mock.ExpectExec(advance).WillReturnError(sql.ErrConnDone)

		_, err := repo.AdvanceStatus(context.Background(), entity.CheckoutCreated, registered())

		assert.True(t, errors.IsRetryable(err))
	})
}

func TestFindByID(t *testing.T) {
	repo := setup()
	defer dbx.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM terminal_checkouts WHERE id = $1")).
		WithArgs("chk_404").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "chk_404")

	assert.True(t, errors.Is(err, errors.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
