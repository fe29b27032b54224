package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/usecase"
	"github.com/secmon-lab/msnipe/pkg/utils/async"
	"github.com/secmon-lab/msnipe/pkg/utils/errutil"
	"github.com/secmon-lab/msnipe/pkg/utils/logging"
	"github.com/secmon-lab/msnipe/pkg/utils/safe"
	"github.com/slack-go/slack/slackevents"
)

const (
	slackTimestampHeader = "X-Slack-Request-Timestamp"
	slackSignatureHeader = "X-Slack-Signature"

	// Older requests are rejected as replays
	slackMaxRequestAge = 5 * time.Minute
)

// verifySlackSignature checks the v0 HMAC-SHA256 signature Slack puts on
// every request.
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" || signature == "" {
		return goerr.New("missing slack signature headers",
			goerr.V("has_timestamp", timestamp != ""),
			goerr.V("has_signature", signature != ""),
		)
	}

	sec, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid slack request timestamp", goerr.V("timestamp", timestamp))
	}
	if age := time.Since(time.Unix(sec, 0)); age > slackMaxRequestAge {
		return goerr.New("slack request is too old", goerr.V("timestamp", timestamp), goerr.V("age", age))
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte("v0:" + timestamp + ":"))
	mac.Write(body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return goerr.New("slack signature mismatch")
	}
	return nil
}

// SlackSignatureMiddleware rejects requests that are not signed with
// signingSecret. The body is restored for the next handler.
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			safe.Close(ctx, r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}

			timestamp := r.Header.Get(slackTimestampHeader)
			signature := r.Header.Get(slackSignatureHeader)
			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// SlackWebhookHandler receives Events API requests. Callback events are
// acknowledged at once and handled in the background.
type SlackWebhookHandler struct {
	slackUC *usecase.SlackUseCases
}

// NewSlackWebhookHandler creates a new Slack webhook handler
func NewSlackWebhookHandler(slackUC *usecase.SlackUseCases) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		slackUC: slackUC,
	}
}

func (h *SlackWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	// Requests are authenticated by signature, not by verification token
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		h.answerChallenge(ctx, w, body)
	case slackevents.CallbackEvent:
		w.WriteHeader(http.StatusOK)
		h.dispatch(ctx, event)
	default:
		logging.From(ctx).Warn("unknown slack event type", "type", event.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackWebhookHandler) answerChallenge(ctx context.Context, w http.ResponseWriter, body []byte) {
	var challenge slackevents.ChallengeResponse
	if err := json.Unmarshal(body, &challenge); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, []byte(challenge.Challenge))
}

// dispatch handles the callback on its own goroutine with an event-scoped logger
func (h *SlackWebhookHandler) dispatch(reqCtx context.Context, event slackevents.EventsAPIEvent) {
	logger := logging.From(reqCtx).With(
		"event_id", uuid.NewString(),
		"platform", types.PlatformSlack.String(),
		"event", event.InnerEvent.Type,
		"team_id", event.TeamID,
	)
	ctx := logging.With(reqCtx, logger)

	async.Dispatch(ctx, func(ctx context.Context) error {
		logging.From(ctx).Debug("processing slack callback event")
		if err := h.slackUC.HandleSlackEvent(ctx, &event); err != nil {
			return goerr.Wrap(err, "failed to handle slack event")
		}
		return nil
	})
}
