// Package kit Kit(구 ConvertKit) REST API v3 클라이언트입니다.
//
// 계정 확인(/account)과 폼, 랜딩 페이지, 태그 목록 조회만 사용합니다. 응답은 gjson으로 필요한 필드만 읽습니다.
package kit

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "kit.client"

const (
	// maxResponseBytes 응답 본문 최대 크기 (10MB)
	maxResponseBytes = 10 << 20

	// maxRetryDelay 지수 백오프 대기 시간의 상한
	maxRetryDelay = 30 * time.Second
)

// Client Kit API 클라이언트입니다. 여러 고루틴에서 동시에 사용할 수 있습니다.
type Client struct {
	baseURL    string
	httpClient *http.Client

	maxRetries int
	retryDelay time.Duration
}

// NewClient 설정으로 Client를 생성합니다.
func NewClient(cfg config.KitConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		maxRetries: cfg.HTTPRetry.MaxRetries,
		retryDelay: cfg.HTTPRetry.RetryDelay,
	}
}

// Account API Secret으로 계정 정보를 조회합니다. 인증 정보 확인 용도로 사용합니다.
func (c *Client) Account(ctx context.Context, creds Credentials) (*Account, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	res, err := c.get(ctx, "/account", url.Values{"api_secret": {creds.APISecret}})
	if err != nil {
		return nil, err
	}

	return &Account{
		Name:         res.Get("name").String(),
		PrimaryEmail: res.Get("primary_email_address").String(),
	}, nil
}

// Forms 보관(archived)되지 않은 폼 목록을 조회합니다.
func (c *Client) Forms(ctx context.Context, creds Credentials) ([]Form, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	res, err := c.get(ctx, "/forms", url.Values{"api_key": {creds.APIKey}})
	if err != nil {
		return nil, err
	}

	forms := res.Get("forms")
	if !forms.IsArray() {
		return nil, newErrParsingFailed("/forms")
	}

	var result []Form
	forms.ForEach(func(_, f gjson.Result) bool {
		if f.Get("archived").Bool() {
			return true
		}

		uid := f.Get("uid").String()
		result = append(result, Form{
			ID:       f.Get("id").Int(),
			Name:     f.Get("name").String(),
			Format:   f.Get("format").String(),
			UID:      uid,
			EmbedJS:  f.Get("embed_js").String(),
			EmbedURL: f.Get("embed_url").String(),
			Legacy:   uid == "",
		})
		return true
	})
	return result, nil
}

// LandingPages 랜딩 페이지 목록을 조회합니다. v3 응답은 "forms" 키 아래에 목록을 담습니다.
func (c *Client) LandingPages(ctx context.Context, creds Credentials) ([]LandingPage, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	res, err := c.get(ctx, "/landing_pages", url.Values{"api_key": {creds.APIKey}})
	if err != nil {
		return nil, err
	}

	pages := res.Get("forms")
	if !pages.IsArray() {
		return nil, newErrParsingFailed("/landing_pages")
	}

	var result []LandingPage
	pages.ForEach(func(_, p gjson.Result) bool {
		if p.Get("archived").Bool() {
			return true
		}
		result = append(result, LandingPage{
			ID:   p.Get("id").Int(),
			Name: p.Get("name").String(),
			URL:  p.Get("embed_url").String(),
		})
		return true
	})
	return result, nil
}

// Tags 태그 목록을 조회합니다.
func (c *Client) Tags(ctx context.Context, creds Credentials) ([]Tag, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	res, err := c.get(ctx, "/tags", url.Values{"api_key": {creds.APIKey}})
	if err != nil {
		return nil, err
	}

	tags := res.Get("tags")
	if !tags.IsArray() {
		return nil, newErrParsingFailed("/tags")
	}

	var result []Tag
	tags.ForEach(func(_, t gjson.Result) bool {
		result = append(result, Tag{ID: t.Get("id").Int(), Name: t.Get("name").String()})
		return true
	})
	return result, nil
}

// get GET 요청을 보내고 JSON 응답을 반환합니다.
//
// 네트워크 오류, 429, 5xx 응답은 지수 백오프(Full Jitter)로 재시도하며 그 외 4xx 응답은 즉시 반환합니다.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (gjson.Result, error) {
	var lastErr error

	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			delay := c.retryDelay * time.Duration(1<<(i-1))
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			if delay > 0 {
				delay = time.Duration(rand.Int64N(int64(delay) + 1))
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"endpoint": endpoint,
				"attempt":  i,
				"delay":    delay.String(),
				"error":    lastErr,
			}).Warn("Kit API 요청 재시도")

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return gjson.Result{}, ctx.Err()
			case <-timer.C:
			}
		}

		res, err := c.do(ctx, endpoint, params)
		if err == nil {
			return res, nil
		}
		if !apperrors.Is(err, apperrors.Unavailable) {
			return gjson.Result{}, err
		}
		lastErr = err
	}

	return gjson.Result{}, lastErr
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values) (gjson.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return gjson.Result{}, apperrors.Wrap(err, apperrors.Internal, "Kit API 요청 생성 실패")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, ctx.Err()
		}
		return gjson.Result{}, newErrRequestFailed(err, endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, newErrRequestFailed(err, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gjson.Result{}, newErrStatus(resp.StatusCode, endpoint, gjson.GetBytes(body, "message").String())
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, newErrParsingFailed(endpoint)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"bytes":    len(body),
	}).Debug("Kit API 응답 수신")

	return gjson.ParseBytes(body), nil
}
