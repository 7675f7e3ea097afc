package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email constraint",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "idx_volunteers_email"},
			want: ErrDuplicateEmail,
		},
		{
			name: "phone constraint",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "idx_volunteers_phone"},
			want: ErrDuplicatePhone,
		},
		{
			name: "indeterminate constraint",
			err:  &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "volunteers_pkey"},
			want: ErrDuplicate,
		},
		{
			name: "wrapped pg error",
			err:  fmt.Errorf("create failed: %w", &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "idx_volunteers_email"}),
			want: ErrDuplicateEmail,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translateDuplicate(tc.err), tc.want)
		})
	}
}

func TestTranslateDuplicatePassesThroughOtherErrors(t *testing.T) {
	// Non-unique pg errors and plain errors are not conflicts
	notNull := &pgconn.PgError{Code: "23502", ColumnName: "email"}
	assert.Equal(t, error(notNull), translateDuplicate(notNull))

	plain := errors.New("connection refused")
	assert.Equal(t, plain, translateDuplicate(plain))
}
