package errors

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
)

// Error codes returned to callers in the error_code field.
const (
	CodeBadRequest              = "BAD_REQUEST"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeNotFound                = "NOT_FOUND"
	CodeConflict                = "CONFLICT"
	CodeInternal                = "INTERNAL_SERVER_ERROR"
	CodeConstraintViolation     = "CONSTRAINT_VIOLATION"
	CodeTransient               = "TRANSIENT"
	CodeAmountMismatch          = "AMOUNT_MISMATCH"
	CodeInvalidPaymentMethod    = "INVALID_PAYMENT_METHOD"
	CodeStoreWriteFailure       = "STORE_WRITE_FAILURE"
	CodeReferencedEntityMissing = "REFERENCED_ENTITY_MISSING"
	CodeInsufficientStaff       = "INSUFFICIENT_STAFF"
	CodeSlotConflict            = "SLOT_CONFLICT"
	CodeWindowExceeded          = "WINDOW_EXCEEDED"
	CodeInvalidSignature        = "INVALID_SIGNATURE"
	CodeAvailabilityUnavailable = "AVAILABILITY_UNAVAILABLE"
)

type CustomError struct {
	HTTPCode int
	Code     string
	Message  string
	Details  map[string]interface{}
}

func (e CustomError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Retryable reports whether repeating the same call may succeed.
func (e CustomError) Retryable() bool {
	return e.Code == CodeTransient || e.Code == CodeStoreWriteFailure
}

func newError(httpCode int, code, message string) CustomError {
	return CustomError{HTTPCode: httpCode, Code: code, Message: message}
}

func BadRequest(message string) error {
	return newError(http.StatusBadRequest, CodeBadRequest, message)
}

func UnauthorizedError(message string) error {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func NotFound(message string) error {
	return newError(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) error {
	return newError(http.StatusConflict, CodeConflict, message)
}

func InternalServerError(message string) error {
	return newError(http.StatusInternalServerError, CodeInternal, message)
}

func ConstraintViolation(message string) error {
	return newError(http.StatusConflict, CodeConstraintViolation, message)
}

func Transient(message string) error {
	return newError(http.StatusServiceUnavailable, CodeTransient, message)
}

func AmountMismatch(expectedCents, paidCents int64) error {
	e := newError(http.StatusUnprocessableEntity, CodeAmountMismatch,
		fmt.Sprintf("payment total %s does not match amount due %s", formatCents(paidCents), formatCents(expectedCents)))
	e.Details = map[string]interface{}{
		"expected":   formatCents(expectedCents),
		"paid":       formatCents(paidCents),
		"difference": formatCents(paidCents - expectedCents),
	}
	return e
}

func InvalidPaymentMethod(method string) error {
	e := newError(http.StatusBadRequest, CodeInvalidPaymentMethod, fmt.Sprintf("payment method %q is not accepted", method))
	e.Details = map[string]interface{}{"method": method}
	return e
}

func StoreWriteFailure(message string) error {
	return newError(http.StatusServiceUnavailable, CodeStoreWriteFailure, message)
}

func ReferencedEntityMissing(entity, id string) error {
	e := newError(http.StatusUnprocessableEntity, CodeReferencedEntityMissing, fmt.Sprintf("%s %s does not exist", entity, id))
	e.Details = map[string]interface{}{"entity": entity, "id": id}
	return e
}

func InsufficientStaff(needed, available int) error {
	e := newError(http.StatusConflict, CodeInsufficientStaff,
		fmt.Sprintf("need %d staff members, %d available", needed, available))
	e.Details = map[string]interface{}{"needed": needed, "available": available}
	return e
}

func SlotConflict(memberID, staffID, at string) error {
	e := newError(http.StatusConflict, CodeSlotConflict,
		fmt.Sprintf("staff %s is not free at %s for member %s", staffID, at, memberID))
	e.Details = map[string]interface{}{"member_id": memberID, "staff_id": staffID, "time": at}
	return e
}

func WindowExceeded(memberID, end, windowEnd string) error {
	e := newError(http.StatusConflict, CodeWindowExceeded,
		fmt.Sprintf("member %s would end at %s, after the booking window closes at %s", memberID, end, windowEnd))
	e.Details = map[string]interface{}{"member_id": memberID, "end_time": end, "window_end": windowEnd}
	return e
}

func InvalidSignature(message string) error {
	return newError(http.StatusUnauthorized, CodeInvalidSignature, message)
}

func AvailabilityUnavailable(message string) error {
	return newError(http.StatusServiceUnavailable, CodeAvailabilityUnavailable, message)
}

// FromStore classifies a store error as NotFound, ConstraintViolation or
// Transient. Errors that are already a CustomError pass through unchanged.
func FromStore(err error, message string) error {
	if err == nil {
		return nil
	}
	var custom CustomError
	if stderrors.As(err, &custom) {
		return custom
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return NotFound(message)
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return ConstraintViolation(message)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return Transient(message + ": store timeout")
	}
	return Transient(message)
}

// IsForeignKeyViolation reports whether err is a pq foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23503"
}

// Reference names the row a foreign key column points at.
type Reference struct {
	Column string
	Entity string
	ID     string
}

// MissingReference turns a pq foreign_key_violation into
// ReferencedEntityMissing for the reference the violated constraint names.
// Postgres names constraints <table>_<column>_fkey. When the driver reports
// neither constraint nor column the first reference is blamed. Any other
// error yields nil.
func MissingReference(err error, refs ...Reference) error {
	if !IsForeignKeyViolation(err) || len(refs) == 0 {
		return nil
	}
	var pqErr *pq.Error
	stderrors.As(err, &pqErr)
	for _, ref := range refs {
		if pqErr.Column == ref.Column || strings.Contains(pqErr.Constraint, "_"+ref.Column+"_") {
			return ReferencedEntityMissing(ref.Entity, ref.ID)
		}
	}
	if pqErr.Constraint == "" && pqErr.Column == "" {
		return ReferencedEntityMissing(refs[0].Entity, refs[0].ID)
	}
	return ReferencedEntityMissing("row", pqErr.Constraint)
}

// IsUniqueViolation reports whether err is a pq unique_violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && pqErr.Code == "23505"
}

func Is(err error, code string) bool {
	var custom CustomError
	return stderrors.As(err, &custom) && custom.Code == code
}

func IsRetryable(err error) bool {
	var custom CustomError
	return stderrors.As(err, &custom) && custom.Retryable()
}

func As(err error) (CustomError, bool) {
	var custom CustomError
	ok := stderrors.As(err, &custom)
	return custom, ok
}

func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
