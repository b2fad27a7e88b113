package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "mediaseed/pkg/errors"
	"mediaseed/pkg/logger"
)

const testUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.handler(req)
}

func TestNewClient(t *testing.T) {
	log := logger.NewTestLogger()
	client := NewClient(10*time.Second, testUserAgent, log)

	require.NotNil(t, client)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	assert.Equal(t, testUserAgent, client.headers["User-Agent"])
	assert.Equal(t, log, client.logger)
}

func TestFetchSuccess(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	client := NewClient(10*time.Second, testUserAgent, logger.NewNopLogger())
	data, err := client.Fetch(context.Background(), server.URL+"/800/600?random=1001")

	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, testUserAgent, gotUA)
}

func TestFetchAcceptsAny2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(10*time.Second, testUserAgent, logger.NewNopLogger())
	data, err := client.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestFetchStatusErrors(t *testing.T) {
	codes := []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	}

	for _, code := range codes {
		t.Run(http.StatusText(code), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", code)
			}))
			defer server.Close()

			client := NewClient(10*time.Second, testUserAgent, logger.NewNopLogger())
			data, err := client.Fetch(context.Background(), server.URL)

			require.Error(t, err)
			assert.Nil(t, data)

			var apiErr *errs.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, errs.ErrorTypeStatus, apiErr.Type)
			assert.Equal(t, code, apiErr.Code)
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	client := NewClient(10*time.Second, testUserAgent, logger.NewNopLogger())
	client.httpClient.Transport = &mockRoundTripper{handler: func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}}

	_, err := client.Fetch(context.Background(), "https://picsum.photos/800/600?random=1001")

	require.Error(t, err)
	assert.Equal(t, errs.ErrorTypeNetwork, errs.TypeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(50*time.Millisecond, testUserAgent, logger.NewNopLogger())

	start := time.Now()
	_, err := client.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.Equal(t, errs.ErrorTypeNetwork, errs.TypeOf(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(10*time.Second, testUserAgent, logger.NewNopLogger())
	_, err := client.Fetch(ctx, server.URL)

	require.Error(t, err)
	assert.True(t, errs.IsCanceled(err))
}

func TestFetchInvalidURL(t *testing.T) {
	client := NewClient(10*time.Second, testUserAgent, logger.NewNopLogger())
	_, err := client.Fetch(context.Background(), "://bad url")

	require.Error(t, err)
	assert.Equal(t, errs.ErrorTypeUnknown, errs.TypeOf(err))
}
