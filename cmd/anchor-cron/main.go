package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/mariposahq/anchor/internal/config"
	"github.com/mariposahq/anchor/internal/logging"
	"go.uber.org/zap"
)

// anchor-cron is a standalone scheduler for deployments without an
// external cron service. It fires the server's cron webhooks on the
// configured UTC schedule; the engine itself stays trigger-driven.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.CronSecret == "" {
		log.Fatal("CRON_SECRET must be set")
	}

	logger, err := logging.New(cfg.LogLevel, "")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	trigger := &cronTrigger{
		baseURL: strings.TrimRight(cfg.CronTargetURL, "/"),
		secret:  cfg.CronSecret,
		client:  &http.Client{Timeout: 2 * time.Minute},
		logger:  logger,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	if _, err := scheduler.Every(cfg.SweepIntervalMin).Minutes().Do(func() {
		trigger.fire("followup-reminders", nil)
	}); err != nil {
		logger.Fatal("schedule reminder sweep", zap.Error(err))
	}
	if _, err := scheduler.Every(1).Day().At(cfg.DailyCheckinTime).Do(func() {
		trigger.fire("daily-checkin", nil)
	}); err != nil {
		logger.Fatal("schedule daily check-in", zap.Error(err))
	}
	if _, err := scheduler.Every(1).Day().At(cfg.EndOfDayTime).Do(func() {
		trigger.fire("end-of-day", nil)
	}); err != nil {
		logger.Fatal("schedule end-of-day check-in", zap.Error(err))
	}
	if _, err := scheduler.Every(1).Week().Weekday(parseWeekday(cfg.WeeklyCheckinDay)).At(cfg.WeeklyCheckinTime).Do(func() {
		trigger.fire("weekly-checkin", nil)
	}); err != nil {
		logger.Fatal("schedule weekly check-in", zap.Error(err))
	}

	scheduler.StartAsync()
	logger.Info("anchor-cron started",
		zap.String("target", trigger.baseURL),
		zap.Int("sweep_interval_minutes", cfg.SweepIntervalMin),
	)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	<-sigCtx.Done()

	scheduler.Stop()
	logger.Info("anchor-cron stopped")
}

type cronTrigger struct {
	baseURL string
	secret  string
	client  *http.Client
	logger  *zap.Logger
}

func (trigger *cronTrigger) fire(job string, payload map[string]string) {
	body, err := json.Marshal(payload)
	if err != nil {
		trigger.logger.Error("encode cron payload", zap.String("job", job), zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/cron/%s", trigger.baseURL, job)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		trigger.logger.Error("build cron request", zap.String("job", job), zap.Error(err))
		return
	}
	req.Header.Set("X-Cron-Secret", trigger.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := trigger.client.Do(req)
	if err != nil {
		trigger.logger.Error("cron request failed", zap.String("job", job), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if resp.StatusCode != http.StatusOK {
		trigger.logger.Error("cron job rejected",
			zap.String("job", job),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(raw)),
		)
		return
	}
	trigger.logger.Info("cron job triggered",
		zap.String("job", job),
		zap.String("response", string(raw)),
	)
}

func parseWeekday(raw string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "monday":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Sunday
	}
}
