package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "status error (code 404): unexpected status 404 Not Found",
		Status(http.StatusNotFound, "404 Not Found").Error())
	assert.Equal(t, "network error: dial tcp: connection refused",
		Network(errors.New("dial tcp: connection refused")).Error())
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"network", Network(errors.New("reset")), ErrorTypeNetwork},
		{"status", Status(500, "500 Internal Server Error"), ErrorTypeStatus},
		{"storage", Storage(errors.New("disk full")), ErrorTypeStorage},
		{"wrapped", fmt.Errorf("fetch: %w", Status(503, "503")), ErrorTypeStatus},
		{"canceled network", Network(fmt.Errorf("get: %w", context.Canceled)), ErrorTypeCanceled},
		{"plain", errors.New("plain"), ErrorTypeUnknown},
		{"nil", nil, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(context.Canceled))
	assert.True(t, IsCanceled(Canceled(context.Canceled)))
	assert.True(t, IsCanceled(fmt.Errorf("run: %w", context.Canceled)))
	assert.False(t, IsCanceled(Network(errors.New("timeout"))))
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(Network(errors.New("timeout"))))
	assert.True(t, IsRecoverable(Status(429, "429 Too Many Requests")))
	assert.True(t, IsRecoverable(Storage(errors.New("read-only"))))
	assert.False(t, IsRecoverable(Canceled(context.Canceled)))
	assert.False(t, IsRecoverable(errors.New("unknown")))
}

func TestUnwrap(t *testing.T) {
	root := errors.New("disk full")
	assert.ErrorIs(t, Storage(root), root)
}
