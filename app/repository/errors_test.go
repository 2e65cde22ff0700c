package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil record", gorm.ErrRecordNotFound, KindNotFound},
		{"mongo miss", mongo.ErrNoDocuments, KindNotFound},
		{"wrapped record not found", fmt.Errorf("load report: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, KindSchemaMissing},
		{"insufficient privilege", &pgconn.PgError{Code: "42501"}, KindPolicyDenied},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"wrapped unique violation", fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"}), KindConflict},
		{"duplicated key sentinel", gorm.ErrDuplicatedKey, KindConflict},
		{"other pg error", &pgconn.PgError{Code: "53300"}, KindGeneric},
		{"flattened schema text", errors.New(`relation "reports" does not exist`), KindSchemaMissing},
		{"flattened rls text", errors.New("new row violates row-level security policy"), KindPolicyDenied},
		{"plain error", errors.New("connection refused"), KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := Classify(tt.err)
			require.NotNil(t, se)
			assert.Equal(t, tt.want, se.Kind)
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyPassesThroughStoreError(t *testing.T) {
	orig := NewStoreError(KindBucketMissing, errors.New("no such bucket"))
	assert.Same(t, orig, Classify(orig))
	assert.Same(t, orig, Classify(fmt.Errorf("upload: %w", orig)))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewStoreError(KindNotFound, nil)))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrap: %w", NewStoreError(KindNotFound, nil))))
	assert.Equal(t, KindGeneric, KindOf(errors.New("boom")))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "config_error", KindConfig.String())
	assert.Equal(t, "schema_missing", KindSchemaMissing.String())
	assert.Equal(t, "policy_denied", KindPolicyDenied.String())
	assert.Equal(t, "storage_unavailable", KindBucketMissing.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "internal_error", KindGeneric.String())
}
