package http_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/secmon-lab/msnipe/pkg/domain/model"
	"github.com/secmon-lab/msnipe/pkg/domain/types"
	"github.com/secmon-lab/msnipe/pkg/service/slack"
)

// mockSlackService is a mock implementation of slack.Service for testing
type mockSlackService struct {
	mu        sync.Mutex
	plain     []string
	formatted []*model.FormattedMessage
}

var _ slack.Service = &mockSlackService{}

func (m *mockSlackService) SendPlainMessage(ctx context.Context, channelID types.ChannelID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plain = append(m.plain, text)
	return nil
}

func (m *mockSlackService) SendFormattedMessage(ctx context.Context, channelID types.ChannelID, msg *model.FormattedMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.formatted = append(m.formatted, msg)
	return nil
}

func (m *mockSlackService) GetUserName(ctx context.Context, userID string) string {
	if userID == "U123" {
		return "alice"
	}
	return userID
}

func (m *mockSlackService) AuthTest(ctx context.Context) (*slack.Identity, error) {
	return &slack.Identity{UserID: "UBOT", Name: "msnipe"}, nil
}

func (m *mockSlackService) Plain() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.plain...)
}

func (m *mockSlackService) Formatted() []*model.FormattedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.FormattedMessage(nil), m.formatted...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
