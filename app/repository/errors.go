package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ErrorKind is the closed taxonomy of persistence failures. Vendor errors are
// classified exactly once, at this boundary; nothing above it inspects error
// message text.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindConfig
	KindSchemaMissing
	KindPolicyDenied
	KindBucketMissing
	KindNotFound
	KindConflict
)

// String returns the wire code handlers expose for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config_error"
	case KindSchemaMissing:
		return "schema_missing"
	case KindPolicyDenied:
		return "policy_denied"
	case KindBucketMissing:
		return "storage_unavailable"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal_error"
	}
}

// StoreError wraps a vendor error together with its classified kind.
type StoreError struct {
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError with an explicit kind.
func NewStoreError(kind ErrorKind, err error) *StoreError {
	return &StoreError{Kind: kind, Err: err}
}

// KindOf extracts the classified kind from err, or KindGeneric.
func KindOf(err error) ErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindGeneric
}

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUndefinedTable        = "42P01"
	pgInsufficientPrivilege = "42501"
	pgUniqueViolation       = "23505"
)

// Classify maps a raw backend error onto the closed kind set. Already
// classified errors pass through unchanged.
func Classify(err error) *StoreError {
	if err == nil {
		return nil
	}

	var se *StoreError
	if errors.As(err, &se) {
		return se
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		return NewStoreError(KindNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewStoreError(KindConflict, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return NewStoreError(KindSchemaMissing, err)
		case pgInsufficientPrivilege:
			return NewStoreError(KindPolicyDenied, err)
		case pgUniqueViolation:
			return NewStoreError(KindConflict, err)
		}
		return NewStoreError(KindGeneric, err)
	}

	// Some drivers only hand us flattened message text; fall back to the
	// vendor phrasing for the two ops-configuration failures.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "does not exist") && strings.Contains(msg, "relation") {
		return NewStoreError(KindSchemaMissing, err)
	}
	if strings.Contains(msg, "row-level security") {
		return NewStoreError(KindPolicyDenied, err)
	}

	return NewStoreError(KindGeneric, err)
}
