package mongotx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsWriteConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "transient transaction label",
			err:  mongo.CommandError{Code: 112, Name: "WriteConflict", Labels: []string{transientTransactionLabel}},
			want: true,
		},
		{
			name: "wrapped command error",
			err:  fmt.Errorf("commit: %w", mongo.CommandError{Labels: []string{transientTransactionLabel}}),
			want: true,
		},
		{
			name: "other label",
			err:  mongo.CommandError{Code: 50, Labels: []string{"UnknownTransactionCommitResult"}},
			want: false,
		},
		{
			name: "no labels",
			err:  mongo.CommandError{Code: 11000, Name: "DuplicateKey"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isWriteConflict(tt.err))
		})
	}
}

func TestIsInTransaction(t *testing.T) {
	assert.False(t, IsInTransaction(context.Background()))
}
