package ses

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"naijatax/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendVATFilingReminder(ctx context.Context, reminder port.VATReminder) error {
	if len(reminder.Periods) == 0 {
		return nil
	}
	vatURL := fmt.Sprintf("%s/vat", s.frontendURL)

	subject := reminderSubject(reminder)
	htmlBody := buildReminderHTML(reminder, vatURL)
	textBody := buildReminderText(reminder, vatURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{reminder.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func reminderSubject(r port.VATReminder) string {
	if len(r.Periods) == 1 {
		p := r.Periods[0]
		return fmt.Sprintf("VAT return for %s %d is pending", time.Month(p.Month), p.Year)
	}
	return fmt.Sprintf("%d VAT returns are pending", len(r.Periods))
}

func periodLine(p port.VATReminderPeriod) string {
	return fmt.Sprintf("%s %d: NGN %s due %s",
		time.Month(p.Month), p.Year, p.NetPayable.StringFixed(2), p.DueDate.Format("2 Jan 2006"))
}

func buildReminderText(r port.VATReminder, vatURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following VAT returns have not been filed yet:\n\n", r.ToName)
	for _, p := range r.Periods {
		b.WriteString("  - " + periodLine(p) + "\n")
	}
	fmt.Fprintf(&b, "\nReview them at %s\n\nNaijaTax", vatURL)
	return b.String()
}

func buildReminderHTML(r port.VATReminder, vatURL string) string {
	var rows strings.Builder
	for _, p := range r.Periods {
		rows.WriteString("    <li>" + html.EscapeString(periodLine(p)) + "</li>\n")
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">VAT returns pending</h2>
  <p>Hi %s,</p>
  <p>The following VAT returns have not been filed yet:</p>
  <ul>
%s  </ul>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #008751; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review VAT periods</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">NaijaTax</p>
</body>
</html>`, html.EscapeString(r.ToName), rows.String(), vatURL)
}
