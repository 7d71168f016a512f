// Package telegram 새 관리자 알림(notice)이 추가되면 운영자에게 텔레그램 메시지를 보냅니다.
package telegram

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/convertkit-admin/internal/config"
	apperrors "github.com/darkkaiser/convertkit-admin/internal/pkg/errors"
	applog "github.com/darkkaiser/convertkit-admin/pkg/log"
	"github.com/darkkaiser/convertkit-admin/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "notifier.telegram"

const (
	// queueSize 발송 대기열 크기. 가득 차면 새 알림은 버려진다.
	queueSize = 32

	httpClientTimeout = 30 * time.Second

	// shutdownTimeout 종료 시 대기열에 남은 메시지를 처리하는 최대 시간
	shutdownTimeout = 10 * time.Second

	maxRetries = 3

	msgNoticeAdded = "<b>【 ConvertKit 】</b>\n\n관리자 알림이 추가되었습니다: <code>%s</code>"
	msgSettingsURL = "\n\n설정 화면: %s"
)

// client 텔레그램 봇 API 중 메시지 전송에 필요한 부분
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier 알림 추가 이벤트를 텔레그램 메시지로 발송합니다. notice.Observer를 구현합니다.
type Notifier struct {
	chatID      int64
	client      client
	settingsURL string

	retryDelay  time.Duration
	rateLimiter *rate.Limiter

	queue chan string
}

// New 텔레그램 봇 클라이언트를 초기화합니다.
func New(cfg config.TelegramConfig, settingsURL string) (*Notifier, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutil.Mask(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 클라이언트 초기화")

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, &http.Client{Timeout: httpClientTimeout})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}

	return newNotifier(botAPI, cfg.ChatID, settingsURL), nil
}

func newNotifier(c client, chatID int64, settingsURL string) *Notifier {
	return &Notifier{
		chatID:      chatID,
		client:      c,
		settingsURL: settingsURL,
		retryDelay:  time.Second,
		// 채팅방당 초당 1회
		rateLimiter: rate.NewLimiter(rate.Limit(1), 1),
		queue:       make(chan string, queueSize),
	}
}

// NoticeAdded 알림 메시지를 발송 대기열에 넣습니다. 요청 처리를 막지 않도록 대기열이 가득 차면 버립니다.
func (n *Notifier) NoticeAdded(_ context.Context, id string) {
	message := fmt.Sprintf(msgNoticeAdded, html.EscapeString(id))
	if n.settingsURL != "" {
		message += fmt.Sprintf(msgSettingsURL, html.EscapeString(n.settingsURL))
	}

	select {
	case n.queue <- message:
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"notice_id":  id,
			"queue_size": queueSize,
		}).Warn("발송 대기열이 가득 차서 알림을 버립니다")
	}
}

// Start 발송 고루틴을 시작합니다. ctx가 취소되면 남은 메시지를 처리한 뒤 wg.Done()을 호출합니다.
func (n *Notifier) Start(ctx context.Context, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		n.run(ctx)
	}()
}

func (n *Notifier) run(ctx context.Context) {
	for {
		select {
		case message := <-n.queue:
			n.sendSafely(ctx, message)

		case <-ctx.Done():
			n.drain()
			return
		}
	}
}

// drain 종료 시점에 대기열에 남은 메시지를 shutdownTimeout 안에서 최대한 보냅니다.
func (n *Notifier) drain() {
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for {
		select {
		case message := <-n.queue:
			n.sendSafely(drainCtx, message)
		default:
			return
		}
		if drainCtx.Err() != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"remaining": len(n.queue),
			}).Warn("종료 대기 시간을 초과하여 남은 알림을 버립니다")
			return
		}
	}
}

func (n *Notifier) sendSafely(ctx context.Context, message string) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": n.chatID,
				"panic":   r,
			}).Error("메시지 발송 중 패닉 발생 (해당 건 스킵)")
		}
	}()

	if err := n.send(ctx, message, true); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": n.chatID,
			"error":   err,
		}).Error("텔레그램 메시지 발송 실패")
	}
}

// send HTML 파싱 오류(400)는 태그를 걷어낸 일반 텍스트로 다시 보내고, 429와 5xx는 재시도합니다.
func (n *Notifier) send(ctx context.Context, message string, useHTML bool) error {
	msg := tgbotapi.NewMessage(n.chatID, message)
	if useHTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}

	if err := n.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := n.client.Send(msg)
		if err == nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": n.chatID,
				"attempt": attempt,
			}).Info("텔레그램 메시지 발송 성공")
			return nil
		}
		lastErr = err

		code, retryAfter := parseTelegramError(err)
		if useHTML && code == http.StatusBadRequest {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Warn("HTML 파싱 오류(400): 일반 텍스트로 다시 보냅니다")
			return n.send(ctx, strutil.StripHTMLTags(message), false)
		}
		if !shouldRetry(code) || attempt == maxRetries {
			break
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"error":       err,
			"code":        code,
			"attempt":     attempt,
			"retry_after": retryAfter,
		}).Warn("텔레그램 메시지 발송 실패 (재시도 예정)")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.delayForRetry(retryAfter)):
		}
	}

	return lastErr
}

// shouldRetry 4xx는 429를 제외하고 재시도하지 않습니다. 네트워크 오류(code 0)는 재시도합니다.
func shouldRetry(code int) bool {
	if code >= 400 && code < 500 {
		return code == http.StatusTooManyRequests
	}
	return true
}

func (n *Notifier) delayForRetry(retryAfter int) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	return n.retryDelay
}

func parseTelegramError(err error) (code int, retryAfter int) {
	var apiErr *tgbotapi.Error
	if apperrors.As(err, &apiErr) {
		return apiErr.Code, apiErr.ResponseParameters.RetryAfter
	}
	var apiErrValue tgbotapi.Error
	if apperrors.As(err, &apiErrValue) {
		return apiErrValue.Code, apiErrValue.ResponseParameters.RetryAfter
	}
	return 0, 0
}
