package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/health", handler.Health)

	app.Get("/webhook", handler.VerifyWebhook)
	app.Post("/webhook", handler.ReceiveMessages)

	cron := app.Group("/cron", handler.RequireCronSecret)
	cron.Post("/followup-reminders", handler.FollowupReminders)
	cron.Post("/daily-checkin", handler.DailyCheckin)
	cron.Post("/weekly-checkin", handler.WeeklyCheckin)
	cron.Post("/end-of-day", handler.EndOfDay)
}
