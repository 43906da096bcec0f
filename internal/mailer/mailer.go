package mailer

import (
	"fmt"
	"log"
	"strings"

	"go-storefront-api/internal/config"
	"go-storefront-api/internal/model"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. Sending is always best-effort: the
// order exists whether or not the confirmation email goes out, so
// failures are logged and swallowed. A nil *Mailer is a valid no-op.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

// SendOrderConfirmation emails the order summary after commit. Called in
// a goroutine by the order service.
func (m *Mailer) SendOrderConfirmation(to string, order *model.Order) {
	if m == nil {
		return
	}

	var lines []string
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%d x %s (%s): %s",
			item.Quantity, item.ProductName, item.SKU, formatCents(item.UnitPrice*int64(item.Quantity))))
	}

	body := fmt.Sprintf(
		"Thank you for your order!\n\nOrder %s\n\n%s\n\nSubtotal: %s\nDiscount: %s\nTax: %s\nTotal: %s\n",
		order.ID,
		strings.Join(lines, "\n"),
		formatCents(order.Subtotal),
		formatCents(order.Discount),
		formatCents(order.Tax),
		formatCents(order.Total),
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order confirmation %s", order.ID))
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("mailer: order confirmation for %s failed: %v", order.ID, err)
	}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
