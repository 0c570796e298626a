package checkin

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mariposahq/anchor/internal/db"
	"github.com/mariposahq/anchor/internal/models"
	"go.uber.org/zap"
)

type sentMessage struct {
	Recipient string
	Body      string
	Buttons   []models.Button
}

// fakeMessenger records dispatches and can be told to fail for specific
// recipients.
type fakeMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]bool
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{failFor: make(map[string]bool)}
}

func (m *fakeMessenger) SendText(_ context.Context, recipient string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[recipient] {
		return errors.New("dispatch refused")
	}
	m.sent = append(m.sent, sentMessage{Recipient: recipient, Body: body})
	return nil
}

func (m *fakeMessenger) SendButtons(_ context.Context, recipient string, body string, buttons []models.Button) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[recipient] {
		return errors.New("dispatch refused")
	}
	m.sent = append(m.sent, sentMessage{Recipient: recipient, Body: body, Buttons: buttons})
	return nil
}

func (m *fakeMessenger) sentTo(recipient string) []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]sentMessage, 0)
	for _, message := range m.sent {
		if message.Recipient == recipient {
			matched = append(matched, message)
		}
	}
	return matched
}

func (m *fakeMessenger) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fakeProvider struct {
	messenger    *fakeMessenger
	failAccounts map[int]bool
}

func (p *fakeProvider) Messenger(accountIndex int) (Messenger, error) {
	if p.failAccounts[accountIndex] {
		return nil, errors.New("no credentials for account")
	}
	return p.messenger, nil
}

type fixedScorer struct {
	score float64
	err   error
}

func (s fixedScorer) Score(_ context.Context, _ string) (float64, error) {
	return s.score, s.err
}

type testEngine struct {
	repos        *db.Repositories
	gate         *Gate
	evaluator    *Evaluator
	selector     *Selector
	tracker      *Tracker
	orchestrator *Orchestrator
	messenger    *fakeMessenger
	provider     *fakeProvider
}

func newTestEngine(t *testing.T, scorer fixedScorer) *testEngine {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "anchor_test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	repos := db.NewRepositories(database)

	logger := zap.NewNop()
	messenger := newFakeMessenger()
	provider := &fakeProvider{messenger: messenger, failAccounts: make(map[int]bool)}

	gate := NewGate(repos.CheckIns, logger)
	evaluator := NewEvaluator(repos.CheckIns, gate, logger)
	selector := NewSelector()
	tracker := NewTracker(repos.Users, repos.CheckIns, scorer, logger)
	orchestrator := NewOrchestrator(repos.Users, repos.CheckIns, evaluator, selector, tracker, provider, OrchestratorOptions{}, logger)

	return &testEngine{
		repos:        repos,
		gate:         gate,
		evaluator:    evaluator,
		selector:     selector,
		tracker:      tracker,
		orchestrator: orchestrator,
		messenger:    messenger,
		provider:     provider,
	}
}

func (engine *testEngine) seedUser(t *testing.T, userID string) models.User {
	t.Helper()
	user := models.User{UserID: userID, Name: userID, LastActive: time.Now().UTC()}
	if err := engine.repos.Users.Create(&user); err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
	return user
}

func (engine *testEngine) appendPrompt(t *testing.T, userID string, at time.Time) models.CheckIn {
	t.Helper()
	entry, err := engine.repos.CheckIns.Append(models.CheckIn{
		UserID:    userID,
		Body:      "How are you feeling today?",
		Kind:      models.KindDaily,
		CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("append prompt for %s: %v", userID, err)
	}
	return entry
}

func (engine *testEngine) appendResponse(t *testing.T, userID string, body string, at time.Time) models.CheckIn {
	t.Helper()
	entry, err := engine.repos.CheckIns.Append(models.CheckIn{
		UserID:     userID,
		Body:       body,
		IsResponse: true,
		Kind:       models.KindDaily,
		CreatedAt:  at,
	})
	if err != nil {
		t.Fatalf("append response for %s: %v", userID, err)
	}
	return entry
}
