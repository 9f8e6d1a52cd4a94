// Package notify holds the outbound notification hooks invoked after
// checkout. Delivery is not implemented: both channels log what they would
// send and return. The checkout flow must call them all the same so real
// transports can be dropped in later.
package notify

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shalliecode/volydog/internal/config"
	"github.com/shalliecode/volydog/internal/models"
)

type Notifier struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Notifier {
	if cfg.MailUsername == "" {
		slog.Info("Mail credentials not configured; order emails will only be logged")
	}
	if cfg.WhatsAppAPIKey == "" {
		slog.Info("WhatsApp API key not configured; order messages will only be logged")
	}
	return &Notifier{cfg: cfg}
}

// SendOrderEmail would deliver an order confirmation via the configured mail
// server. Placeholder: logs the message instead.
func (n *Notifier) SendOrderEmail(order *models.Order) {
	slog.Info("Order confirmation email queued",
		"message_id", uuid.NewString(),
		"to", order.CustomerEmail,
		"order_number", order.OrderNumber,
		"mail_server", n.cfg.MailServer,
	)
}

// SendWhatsAppNotification would ping the shop's admin phone about a new
// order. Placeholder: logs the message instead.
func (n *Notifier) SendWhatsAppNotification(order *models.Order) {
	slog.Info("Order WhatsApp notification queued",
		"message_id", uuid.NewString(),
		"to", n.cfg.AdminPhone,
		"order_number", order.OrderNumber,
	)
}
