package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mariposahq/anchor/internal/checkin"
	"go.uber.org/zap"
)

type sweepFunc func(ctx context.Context, now time.Time) (checkin.SweepReport, error)

// FollowupReminders runs a reminder sweep. An optional reminder_type field
// restricts the sweep to one window; an unrecognized value falls back to
// checking all windows, matching how the schedulers have always called it.
func (handler *Handler) FollowupReminders(c *fiber.Ctx) error {
	var body struct {
		ReminderType string `json:"reminder_type"`
	}
	_ = c.BodyParser(&body)

	var requested *checkin.WindowKind
	if body.ReminderType != "" {
		kind, ok := checkin.ParseWindowKind(body.ReminderType)
		if !ok {
			handler.logger.Warn("invalid reminder_type, checking all windows",
				zap.String("reminder_type", body.ReminderType))
		} else {
			requested = &kind
		}
	}

	return handler.runSweep(c, "followup-reminders", func(ctx context.Context, now time.Time) (checkin.SweepReport, error) {
		return handler.orchestrator.RunSweep(ctx, now, requested)
	})
}

func (handler *Handler) DailyCheckin(c *fiber.Ctx) error {
	return handler.runSweep(c, "daily-checkin", handler.orchestrator.RunDailyCheckins)
}

func (handler *Handler) WeeklyCheckin(c *fiber.Ctx) error {
	return handler.runSweep(c, "weekly-checkin", handler.orchestrator.RunWeeklyCheckins)
}

func (handler *Handler) EndOfDay(c *fiber.Ctx) error {
	return handler.runSweep(c, "end-of-day", handler.orchestrator.RunEndOfDayCheckins)
}

func (handler *Handler) runSweep(c *fiber.Ctx, job string, sweep sweepFunc) error {
	now := time.Now().UTC()
	report, err := sweep(c.Context(), now)
	if err != nil {
		handler.logger.Error("cron job failed", zap.String("job", job), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":    "error",
			"error":     err.Error(),
			"timestamp": now.Format(time.RFC3339),
		})
	}

	handler.logger.Info("cron job completed",
		zap.String("job", job),
		zap.Int("evaluated", report.Evaluated),
		zap.Int("dispatched", report.Dispatched),
		zap.Int("failed", report.Failed),
	)
	return c.JSON(fiber.Map{
		"status":    "success",
		"job":       job,
		"report":    report,
		"timestamp": now.Format(time.RFC3339),
	})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
