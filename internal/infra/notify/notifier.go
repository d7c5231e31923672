package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"couponbot/internal/usecase/commands"
)

// CouponNotifier fans a freshly issued coupon out to the buyer's chat and,
// when an address is on file, their inbox. Partial delivery is tolerated:
// both channels are attempted and failures are joined.
type CouponNotifier struct {
	telegram *TelegramClient
	email    *EmailClient
}

func NewCouponNotifier(telegram *TelegramClient, email *EmailClient) *CouponNotifier {
	return &CouponNotifier{telegram: telegram, email: email}
}

func (n *CouponNotifier) CouponIssued(ctx context.Context, to commands.NotifyTarget, couponCode string, amountUnits int64) error {
	text := fmt.Sprintf(
		"Payment received!\n\nYour coupon code:\n`%s`\n\nValue: %d\n\nShow this code to the merchant to redeem it.",
		couponCode, amountUnits,
	)

	var failures []error
	if err := n.telegram.SendMessage(ctx, to.ExternalID, text); err != nil {
		slog.Warn("telegram delivery failed", "external_id", to.ExternalID, "error", err)
		failures = append(failures, err)
	}

	if to.Email != nil {
		subject := "Your coupon code"
		body := fmt.Sprintf("Thank you for your purchase.\n\nCoupon code: %s\nValue: %d\n\nShow this code to the merchant to redeem it.\n", couponCode, amountUnits)
		if err := n.email.Send(*to.Email, subject, body); err != nil {
			slog.Warn("email delivery failed", "external_id", to.ExternalID, "error", err)
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}
