package kit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var creds = Credentials{APIKey: "key-1234", APISecret: "secret-5678"}

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(config.KitConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		HTTPRetry:      config.HTTPRetryConfig{MaxRetries: maxRetries, RetryDelay: time.Millisecond},
	})
}

func TestClient_Forms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/forms", r.URL.Path)
		assert.Equal(t, "key-1234", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"forms":[
			{"id":2765139,"name":"Page Form","format":"inline","uid":"85629c512d","embed_js":"https://example.ck.page/85629c512d/index.js","embed_url":"https://example.ck.page/85629c512d"},
			{"id":2780977,"name":"Modal Form","format":"modal","uid":"397e876257","embed_js":"https://example.ck.page/397e876257/index.js","embed_url":"https://example.ck.page/397e876257"},
			{"id":470099,"name":"Legacy Form","embed_url":"https://api.convertkit.com/landing/forms/470099"},
			{"id":1,"name":"Archived","archived":true}
		]}`))
	}))
	defer srv.Close()

	forms, err := newTestClient(srv.URL+"/v3", 0).Forms(context.Background(), creds)
	require.NoError(t, err)
	require.Len(t, forms, 3)

	assert.Equal(t, int64(2765139), forms[0].ID)
	assert.True(t, forms[0].IsInline())
	assert.False(t, forms[1].IsInline())
	assert.Equal(t, "397e876257", forms[1].UID)
	assert.True(t, forms[2].Legacy)
}

func TestClient_LandingPagesAndTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/landing_pages":
			_, _ = w.Write([]byte(`{"forms":[{"id":10,"name":"Landing","embed_url":"https://example.ck.page/landing"}]}`))
		case "/tags":
			_, _ = w.Write([]byte(`{"tags":[{"id":20,"name":"wordpress"}]}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 0)

	pages, err := c.LandingPages(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, []LandingPage{{ID: 10, Name: "Landing", URL: "https://example.ck.page/landing"}}, pages)

	tags, err := c.Tags(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, []Tag{{ID: 20, Name: "wordpress"}}, tags)
}

func TestClient_Account(t *testing.T) {
	t.Run("성공", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret-5678", r.URL.Query().Get("api_secret"))
			_, _ = w.Write([]byte(`{"name":"Example","primary_email_address":"owner@example.com"}`))
		}))
		defer srv.Close()

		account, err := newTestClient(srv.URL, 0).Account(context.Background(), creds)
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", account.PrimaryEmail)
	})

	t.Run("인증 실패는 재시도하지 않고 Unauthorized로 분류된다", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authorization Failed","message":"API Key not valid"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 3).Account(context.Background(), creds)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unauthorized))
		assert.Contains(t, err.Error(), "API Key not valid")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("인증 정보 누락", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1", 0).Account(context.Background(), Credentials{APIKey: "k"})
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})
}

func TestClient_Retry(t *testing.T) {
	t.Run("5xx 응답 후 성공", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"tags":[]}`))
		}))
		defer srv.Close()

		tags, err := newTestClient(srv.URL, 3).Tags(context.Background(), creds)
		require.NoError(t, err)
		assert.Empty(t, tags)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("재시도 횟수 초과", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 2).Tags(context.Background(), creds)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Unavailable))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("잘못된 JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 0).Tags(context.Background(), creds)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})
}
