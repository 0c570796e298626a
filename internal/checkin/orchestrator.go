package checkin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mariposahq/anchor/internal/db"
	"github.com/mariposahq/anchor/internal/models"
	"go.uber.org/zap"
)

const (
	defaultActiveHorizon = 30 * 24 * time.Hour
	defaultTrendDays     = 14
)

// SweepReport summarizes one orchestrator run. Per-user failures are
// counted, not fatal: the batch still reports success.
type SweepReport struct {
	Evaluated  int `json:"evaluated"`
	Dispatched int `json:"dispatched"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type OrchestratorOptions struct {
	ActiveHorizon      time.Duration
	SentimentTrendDays int
}

// Orchestrator is the sweep entry point: it iterates active users and runs
// Gate -> Evaluator -> Selector -> dispatch -> ledger append for each.
type Orchestrator struct {
	users     UserStore
	ledger    Ledger
	evaluator *Evaluator
	selector  *Selector
	tracker   *Tracker
	provider  MessengerProvider
	locks     *userLocks
	horizon   time.Duration
	trendDays int
	logger    *zap.Logger
}

func NewOrchestrator(
	users UserStore,
	ledger Ledger,
	evaluator *Evaluator,
	selector *Selector,
	tracker *Tracker,
	provider MessengerProvider,
	options OrchestratorOptions,
	logger *zap.Logger,
) *Orchestrator {
	horizon := options.ActiveHorizon
	if horizon <= 0 {
		horizon = defaultActiveHorizon
	}
	trendDays := options.SentimentTrendDays
	if trendDays <= 0 {
		trendDays = defaultTrendDays
	}
	return &Orchestrator{
		users:     users,
		ledger:    ledger,
		evaluator: evaluator,
		selector:  selector,
		tracker:   tracker,
		provider:  provider,
		locks:     newUserLocks(),
		horizon:   horizon,
		trendDays: trendDays,
		logger:    logger,
	}
}

// RunSweep evaluates every active user for a follow-up reminder. When
// requested is non-nil only that window fires. The sweep runs to
// completion over its user set; one bad user never blocks the rest.
func (orchestrator *Orchestrator) RunSweep(ctx context.Context, now time.Time, requested *WindowKind) (SweepReport, error) {
	report := SweepReport{}
	err := orchestrator.forEachActiveUser(ctx, now, &report, func(ctx context.Context, messenger Messenger, user models.User) (bool, error) {
		return orchestrator.remindUser(ctx, messenger, user, now, requested)
	})
	return report, err
}

// RunDailyCheckins sends the scheduled morning prompt to daily-planning
// users. Each dispatched prompt becomes the fresh baseline the reminder
// windows measure from.
func (orchestrator *Orchestrator) RunDailyCheckins(ctx context.Context, now time.Time) (SweepReport, error) {
	report := SweepReport{}
	err := orchestrator.forEachActiveUser(ctx, now, &report, func(ctx context.Context, messenger Messenger, user models.User) (bool, error) {
		if user.PlanningType == models.PlanningWeekly {
			return false, nil
		}
		body := orchestrator.selector.DailyCheckinMessage(user)
		return orchestrator.sendPrompt(ctx, messenger, user, body, models.KindDaily, now)
	})
	return report, err
}

// RunWeeklyCheckins sends the weekly planning prompt to weekly-planning
// users.
func (orchestrator *Orchestrator) RunWeeklyCheckins(ctx context.Context, now time.Time) (SweepReport, error) {
	report := SweepReport{}
	err := orchestrator.forEachActiveUser(ctx, now, &report, func(ctx context.Context, messenger Messenger, user models.User) (bool, error) {
		if user.PlanningType != models.PlanningWeekly {
			return false, nil
		}
		body := orchestrator.selector.WeeklyCheckinMessage(user)
		return orchestrator.sendPrompt(ctx, messenger, user, body, models.KindWeekly, now)
	})
	return report, err
}

// RunEndOfDayCheckins sends the evening reflection to every active user.
func (orchestrator *Orchestrator) RunEndOfDayCheckins(ctx context.Context, now time.Time) (SweepReport, error) {
	report := SweepReport{}
	err := orchestrator.forEachActiveUser(ctx, now, &report, func(ctx context.Context, messenger Messenger, user models.User) (bool, error) {
		startOfDay := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
		responses, err := orchestrator.ledger.ListSince(user.UserID, true, startOfDay)
		if err != nil {
			return false, fmt.Errorf("list today's responses: %w", err)
		}
		trend := orchestrator.trendFor(user.UserID, now)
		body := orchestrator.selector.EndOfDayMessage(user, len(responses), trend)
		return orchestrator.sendPrompt(ctx, messenger, user, body, models.KindEndOfDay, now)
	})
	return report, err
}

func (orchestrator *Orchestrator) forEachActiveUser(
	ctx context.Context,
	now time.Time,
	report *SweepReport,
	process func(ctx context.Context, messenger Messenger, user models.User) (bool, error),
) error {
	users, err := orchestrator.users.ListActive(now.Add(-orchestrator.horizon))
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	for _, accountIndex := range sortedAccounts(users) {
		messenger, err := orchestrator.provider.Messenger(accountIndex)
		accountUsers := usersForAccount(users, accountIndex)
		if err != nil {
			orchestrator.logger.Error("resolve messenger for account",
				zap.Int("account_index", accountIndex), zap.Error(err))
			report.Evaluated += len(accountUsers)
			report.Failed += len(accountUsers)
			continue
		}

		for _, user := range accountUsers {
			report.Evaluated++
			dispatched, err := process(ctx, messenger, user)
			if err != nil {
				report.Failed++
				orchestrator.logger.Error("processing user failed",
					zap.String("user_id", user.UserID), zap.Error(err))
				continue
			}
			if dispatched {
				report.Dispatched++
			} else {
				report.Skipped++
			}
		}
	}
	return nil
}

// remindUser holds the per-user advisory lock across the read-decide-append
// sequence. The appended prompt resets the elapsed baseline, so an
// immediately following sweep finds elapsed near zero and matches no
// window; the conditional append is the backstop against a writer outside
// this lock.
func (orchestrator *Orchestrator) remindUser(ctx context.Context, messenger Messenger, user models.User, now time.Time, requested *WindowKind) (bool, error) {
	unlock := orchestrator.locks.lock(user.UserID)
	defer unlock()

	kind, err := orchestrator.evaluator.Evaluate(user.UserID, now, requested)
	if err != nil {
		return false, err
	}
	if kind == nil {
		return false, nil
	}

	baselineID := ""
	promptKind := models.KindDaily
	prompts, err := orchestrator.ledger.Latest(user.UserID, false, 1)
	if err != nil {
		return false, err
	}
	if len(prompts) > 0 {
		baselineID = prompts[0].ID
		promptKind = prompts[0].Kind
	}

	trend := orchestrator.trendFor(user.UserID, now)
	message := orchestrator.selector.SelectMessage(user, *kind, trend)

	if err := messenger.SendButtons(ctx, user.UserID, message.Body, message.Buttons); err != nil {
		return false, fmt.Errorf("dispatch %s reminder: %w", *kind, err)
	}

	if _, err := orchestrator.ledger.AppendPromptIfLatest(models.CheckIn{
		UserID:    user.UserID,
		Body:      message.Body,
		Kind:      promptKind,
		CreatedAt: now.UTC(),
	}, baselineID); err != nil {
		if errors.Is(err, db.ErrStalePrompt) {
			orchestrator.logger.Warn("concurrent writer already recorded a prompt",
				zap.String("user_id", user.UserID))
			return true, nil
		}
		return false, fmt.Errorf("record dispatched prompt: %w", err)
	}
	return true, nil
}

// sendPrompt dispatches a scheduled prompt and records it. The ledger
// append happens only after dispatch succeeded, so a failed send never
// resets the user's reminder baseline.
func (orchestrator *Orchestrator) sendPrompt(ctx context.Context, messenger Messenger, user models.User, body string, kind string, now time.Time) (bool, error) {
	unlock := orchestrator.locks.lock(user.UserID)
	defer unlock()

	if err := messenger.SendText(ctx, user.UserID, body); err != nil {
		return false, fmt.Errorf("dispatch %s check-in: %w", kind, err)
	}
	if _, err := orchestrator.ledger.Append(models.CheckIn{
		UserID:    user.UserID,
		Body:      body,
		Kind:      kind,
		CreatedAt: now.UTC(),
	}); err != nil {
		return false, fmt.Errorf("record %s check-in: %w", kind, err)
	}
	return true, nil
}

func (orchestrator *Orchestrator) trendFor(userID string, now time.Time) Trend {
	trend, err := orchestrator.tracker.SentimentTrend(userID, now, orchestrator.trendDays)
	if err != nil {
		orchestrator.logger.Warn("sentiment trend unavailable",
			zap.String("user_id", userID), zap.Error(err))
		return Trend{Label: TrendNeutral}
	}
	return trend
}

func sortedAccounts(users []models.User) []int {
	seen := make(map[int]bool)
	accounts := make([]int, 0)
	for _, user := range users {
		if !seen[user.AccountIndex] {
			seen[user.AccountIndex] = true
			accounts = append(accounts, user.AccountIndex)
		}
	}
	sort.Ints(accounts)
	return accounts
}

func usersForAccount(users []models.User, accountIndex int) []models.User {
	matched := make([]models.User, 0)
	for _, user := range users {
		if user.AccountIndex == accountIndex {
			matched = append(matched, user)
		}
	}
	return matched
}
