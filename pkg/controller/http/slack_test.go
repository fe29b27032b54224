package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/msnipe/pkg/controller/http"
	"github.com/secmon-lab/msnipe/pkg/repository/memory"
	"github.com/secmon-lab/msnipe/pkg/usecase"
)

const testSigningSecret = "test-signing-secret"

func computeSlackSignature(signingSecret, timestamp, body string) string {
	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	return "v0=" + hex.EncodeToString(h.Sum(nil))
}

func now() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// slackWebhook drives the HTTP server the way Slack does: signed JSON POSTs
// to /hooks/slack/event.
type slackWebhook struct {
	t    *testing.T
	srv  http.Handler
	repo *memory.Repository
	svc  *mockSlackService
	uc   *usecase.UseCases
}

func newSlackWebhook(t *testing.T) *slackWebhook {
	t.Helper()
	repo := memory.New()
	svc := &mockSlackService{}
	uc := usecase.New(repo, usecase.WithSlackService(svc))
	srv := httpctrl.New(httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc.Slack), testSigningSecret))

	return &slackWebhook{t: t, srv: srv, repo: repo, svc: svc, uc: uc}
}

func (w *slackWebhook) send(body []byte) *httptest.ResponseRecorder {
	w.t.Helper()
	timestamp := now()
	req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", computeSlackSignature(testSigningSecret, timestamp, string(body)))

	rec := httptest.NewRecorder()
	w.srv.ServeHTTP(rec, req)
	return rec
}

func (w *slackWebhook) event(event map[string]any) {
	w.t.Helper()
	body, err := json.Marshal(map[string]any{
		"token":      "test-token",
		"team_id":    "T123",
		"api_app_id": "A123",
		"type":       "event_callback",
		"event":      event,
	})
	gt.NoError(w.t, err).Required()

	rec := w.send(body)
	gt.Value(w.t, rec.Code).Equal(http.StatusOK)
}

func (w *slackWebhook) message(user, ts, text string) {
	w.t.Helper()
	w.event(map[string]any{
		"type":         "message",
		"user":         user,
		"text":         text,
		"ts":           ts,
		"channel":      "C123",
		"channel_type": "channel",
	})
}

func (w *slackWebhook) recorded(n int) {
	w.t.Helper()
	waitFor(w.t, func() bool {
		return len(w.repo.Recent().List(context.Background(), "C123")) == n
	})
}

func TestVerifySlackSignature(t *testing.T) {
	body := []byte(`{"type":"url_verification","challenge":"test"}`)
	fresh := now()
	old := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)

	tests := []struct {
		name      string
		timestamp string
		signature string
		wantErr   bool
	}{
		{"valid", fresh, computeSlackSignature(testSigningSecret, fresh, string(body)), false},
		{"tampered signature", fresh, "v0=invalid_signature", true},
		{"missing timestamp", "", computeSlackSignature(testSigningSecret, "123456", string(body)), true},
		{"missing signature", fresh, "", true},
		{"timestamp too old", old, computeSlackSignature(testSigningSecret, old, string(body)), true},
		{"timestamp not a number", "not-a-number", computeSlackSignature(testSigningSecret, "not-a-number", string(body)), true},
		{"signed with another secret", fresh, computeSlackSignature("wrong-secret", fresh, string(body)), true},
		{"signed over another body", fresh, computeSlackSignature(testSigningSecret, fresh, "different body"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := httpctrl.VerifySlackSignature(testSigningSecret, tt.timestamp, tt.signature, body)
			if tt.wantErr {
				gt.Value(t, err).NotNil()
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestSlackSignatureMiddleware(t *testing.T) {
	body := []byte(`{"type":"event_callback"}`)

	t.Run("valid request reaches next handler with body intact", func(t *testing.T) {
		timestamp := now()
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
		req.Header.Set("X-Slack-Request-Timestamp", timestamp)
		req.Header.Set("X-Slack-Signature", computeSlackSignature(testSigningSecret, timestamp, string(body)))

		var received []byte
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error
			received, err = io.ReadAll(r.Body)
			gt.NoError(t, err)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		httpctrl.SlackSignatureMiddleware(testSigningSecret)(next).ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, string(received)).Equal(string(body))
	})

	rejected := []struct {
		name    string
		headers map[string]string
	}{
		{"invalid signature", map[string]string{
			"X-Slack-Request-Timestamp": now(),
			"X-Slack-Signature":         "v0=invalid",
		}},
		{"missing timestamp header", map[string]string{
			"X-Slack-Signature": "v0=somesignature",
		}},
		{"missing signature header", map[string]string{
			"X-Slack-Request-Timestamp": now(),
		}},
		{"missing both headers", map[string]string{}},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			rec := httptest.NewRecorder()
			httpctrl.SlackSignatureMiddleware(testSigningSecret)(next).ServeHTTP(rec, req)

			gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
			gt.Value(t, called).Equal(false)
		})
	}
}

func TestSlackWebhook_URLVerification(t *testing.T) {
	w := newSlackWebhook(t)

	body, err := json.Marshal(map[string]any{
		"type":      "url_verification",
		"challenge": "test-challenge-token",
	})
	gt.NoError(t, err).Required()

	rec := w.send(body)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Value(t, rec.Body.String()).Equal("test-challenge-token")
}

func TestSlackWebhook_MalformedBody(t *testing.T) {
	w := newSlackWebhook(t)

	rec := w.send([]byte(`{not json`))
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestSlackWebhook_MessageIsRecorded(t *testing.T) {
	w := newSlackWebhook(t)

	w.message("U123", "1234567890.123456", "Hello from test")
	w.recorded(1)

	records := w.repo.Recent().List(context.Background(), "C123")
	gt.Value(t, records[0].Content).Equal("Hello from test")
	gt.Value(t, records[0].Author).Equal("alice")
	gt.Value(t, records[0].Timestamp).Equal(time.Unix(1234567890, 123456000).UTC())
}

func TestSlackWebhook_SnipeFlow(t *testing.T) {
	w := newSlackWebhook(t)

	w.message("U123", "1700000000.000100", "secret plan")
	w.recorded(1)

	w.event(map[string]any{
		"type":       "message",
		"subtype":    "message_deleted",
		"hidden":     true,
		"channel":    "C123",
		"ts":         "1700000100.000000",
		"deleted_ts": "1700000000.000100",
		"previous_message": map[string]any{
			"type": "message",
			"user": "U123",
			"text": "secret plan",
			"ts":   "1700000000.000100",
		},
	})
	waitFor(t, func() bool {
		return w.repo.Snipe().Get(context.Background(), "C123") != nil
	})
	gt.Array(t, w.repo.Recent().List(context.Background(), "C123")).Length(0)

	w.message("U999", "1700000200.000000", "msnipe")
	waitFor(t, func() bool {
		return len(w.svc.Formatted()) == 1
	})

	formatted := w.svc.Formatted()
	gt.Value(t, formatted[0].Title).Equal("Last deleted message by alice")
	gt.Value(t, formatted[0].Body).Equal("secret plan")
	gt.Value(t, formatted[0].Timestamp).Equal(time.Unix(1700000000, 100000).UTC())
}

func TestSlackWebhook_DeletionWithoutPreviousMessage(t *testing.T) {
	w := newSlackWebhook(t)

	w.message("U123", "1700000000.000100", "only in cache")
	w.recorded(1)

	w.event(map[string]any{
		"type":       "message",
		"subtype":    "message_deleted",
		"hidden":     true,
		"channel":    "C123",
		"ts":         "1700000100.000000",
		"deleted_ts": "1700000000.000100",
	})
	waitFor(t, func() bool {
		return w.repo.Snipe().Get(context.Background(), "C123") != nil
	})

	got := w.repo.Snipe().Get(context.Background(), "C123")
	gt.Value(t, got.Author).Equal("alice")
	gt.Value(t, got.Content).Equal("only in cache")
}

func TestSlackWebhook_PingAndEmptySnipe(t *testing.T) {
	w := newSlackWebhook(t)

	w.message("U123", "1700000000.000100", "!ping")
	waitFor(t, func() bool { return len(w.svc.Plain()) == 1 })

	w.message("U123", "1700000001.000100", "msnipe")
	waitFor(t, func() bool { return len(w.svc.Plain()) == 2 })

	gt.Value(t, w.svc.Plain()).Equal([]string{"Pong!", "Nothing to snipe!"})
	gt.Array(t, w.svc.Formatted()).Length(0)
}

func TestSlackWebhook_IgnoresOwnCommands(t *testing.T) {
	w := newSlackWebhook(t)
	gt.NoError(t, w.uc.Slack.Connect(context.Background())).Required()

	w.message("UBOT", "1700000000.000100", "!ping")
	w.recorded(1)

	w.message("U123", "1700000001.000100", "!ping")
	waitFor(t, func() bool { return len(w.svc.Plain()) == 1 })

	gt.Value(t, w.svc.Plain()).Equal([]string{"Pong!"})
	w.recorded(2)
}

func TestSlackWebhook_UnknownEnvelopeType(t *testing.T) {
	w := newSlackWebhook(t)

	body, err := json.Marshal(map[string]any{
		"token": "test-token",
		"type":  "app_rate_limited",
	})
	gt.NoError(t, err).Required()

	rec := w.send(body)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Array(t, w.repo.Recent().List(context.Background(), "C123")).Length(0)
}
