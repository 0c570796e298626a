package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mariposahq/anchor/internal/models"
	"github.com/mariposahq/anchor/internal/whatsapp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VerifyWebhook answers the Meta subscription handshake.
func (handler *Handler) VerifyWebhook(c *fiber.Ctx) error {
	if c.Query("hub.mode") == "subscribe" && c.Query("hub.verify_token") == handler.verifyToken {
		return c.SendString(c.Query("hub.challenge"))
	}
	return c.SendStatus(fiber.StatusForbidden)
}

// ReceiveMessages records each inbound user message as a response ledger
// entry, creating the user on first contact.
func (handler *Handler) ReceiveMessages(c *fiber.Ctx) error {
	raw := c.Body()
	if handler.appSecret != "" && !whatsapp.ValidSignature(handler.appSecret, raw, c.Get("X-Hub-Signature-256")) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid signature"})
	}

	inbound, err := whatsapp.ParseInbound(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	now := time.Now().UTC()
	for _, message := range inbound {
		user, err := handler.findOrCreateUser(message)
		if err != nil {
			handler.logger.Error("resolve inbound user failed",
				zap.String("user_id", message.From), zap.Error(err))
			continue
		}

		if _, err := handler.tracker.RecordResponse(c.Context(), user.UserID, message.Body, models.KindDaily, now); err != nil {
			handler.logger.Error("record response failed",
				zap.String("user_id", user.UserID), zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{"status": "success"})
}

func (handler *Handler) findOrCreateUser(message whatsapp.Inbound) (models.User, error) {
	user, err := handler.repos.Users.FindByID(message.From)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	name := message.Name
	if name == "" {
		name = message.From
	}
	user = models.User{
		UserID: message.From,
		Name:   name,
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return models.User{}, err
	}
	handler.logger.Info("registered new user on first contact",
		zap.String("user_id", user.UserID))
	return user, nil
}
