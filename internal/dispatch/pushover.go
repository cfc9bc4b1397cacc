package dispatch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
	"github.com/joseporiolcarne/backtraderalerts/pkg/errors"
)

const pushoverEndpoint = "https://api.pushover.net/1/messages.json"

// PushoverConfig carries the Pushover REST API parameters.
type PushoverConfig struct {
	Token    string
	UserKey  string
	Priority int
	Sound    string
}

// PushoverNotifier pushes alerts through the Pushover message API.
type PushoverNotifier struct {
	config   PushoverConfig
	client   *http.Client
	endpoint string
}

var _ Notifier = (*PushoverNotifier)(nil)

func NewPushoverNotifier(config PushoverConfig) (*PushoverNotifier, error) {
	if config.Token == "" || config.UserKey == "" {
		return nil, errors.New(errors.ErrCodeNotifierInitFailed, "pushover requires both token and user key")
	}

	return &PushoverNotifier{
		config:   config,
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: pushoverEndpoint,
	}, nil
}

func (p *PushoverNotifier) Name() string {
	return "pushover"
}

func (p *PushoverNotifier) Notify(ctx context.Context, event types.SignalEvent) error {
	form := url.Values{}
	form.Set("token", p.config.Token)
	form.Set("user", p.config.UserKey)
	form.Set("title", string(event.Action)+" "+event.Symbol)
	form.Set("message", FormatMessage(event))
	form.Set("timestamp", strconv.FormatInt(event.Time.Unix(), 10))

	if p.config.Priority != 0 {
		form.Set("priority", strconv.Itoa(p.config.Priority))
	}

	if p.config.Sound != "" {
		form.Set("sound", p.config.Sound)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(errors.ErrCodeDispatchFailed, "pushover request build failed", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDispatchFailed, "pushover delivery failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return errors.Newf(errors.ErrCodeDispatchFailed, "pushover returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
