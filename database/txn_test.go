package database

import (
	"errors"
	"net/http"
	"testing"

	"innkeep/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func writeConflict() error {
	return mongo.CommandError{
		Code:    112,
		Name:    "WriteConflict",
		Message: "write conflict during plan execution",
		Labels:  []string{"TransientTransactionError"},
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"write conflict", writeConflict(), true},
		{"wrapped as gateway error", utils.NewGatewayError("increment daily total", writeConflict()), true},
		{"unlabelled command error", mongo.CommandError{Code: 2, Message: "bad value"}, false},
		{"duplicate key conflict", utils.NewConflictError("room 101 already exists"), false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestRetryTransient_RerunsUntilCommitted(t *testing.T) {
	calls := 0
	err := retryTransient(3, func() error {
		calls++
		if calls < 3 {
			return utils.NewGatewayError("increment daily total", writeConflict())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryTransient_ExhaustedIsStaleConflict(t *testing.T) {
	calls := 0
	err := retryTransient(2, func() error {
		calls++
		return utils.NewGatewayError("increment daily total", writeConflict())
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, utils.IsStale(err))
	assert.Equal(t, http.StatusConflict, utils.StatusFor(err))
}

func TestRetryTransient_OtherErrorsReturnImmediately(t *testing.T) {
	calls := 0
	gatewayErr := utils.NewGatewayError("insert room", errors.New("connection refused"))
	err := retryTransient(3, func() error {
		calls++
		return gatewayErr
	})
	assert.Same(t, gatewayErr, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusBadGateway, utils.StatusFor(err))
}
