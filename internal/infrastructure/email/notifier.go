package email

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/hillcrest-auto/dealer-backend/internal/config"
	"github.com/hillcrest-auto/dealer-backend/internal/domain/model"
)

// Notifier sends dealership-inbox notifications for new inquiries and
// credit applications. A Notifier built from an empty SMTP config is
// disabled and silently drops sends.
type Notifier struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
	send   func(m ...*gomail.Message) error
}

// NewNotifier creates a notifier from SMTP config.
func NewNotifier(cfg config.SMTPConfig, logger *zap.Logger) *Notifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &Notifier{
		cfg:    cfg,
		logger: logger,
		send:   d.DialAndSend,
	}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.cfg.Host != "" && n.cfg.NotifyTo != ""
}

// dispatch sends the email in the background so a slow SMTP server never
// holds up the customer's request. Failures are logged, not returned.
func (n *Notifier) dispatch(subject, htmlBody string) {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.From, "Hillcrest Auto"))
	m.SetHeader("To", n.cfg.NotifyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	go func() {
		if err := n.send(m); err != nil {
			n.logger.Warn("Failed to send notification email",
				zap.String("subject", subject), zap.Error(err))
		}
	}()
}

// NotifyInquiry emails the dealership about a new contact inquiry.
func (n *Notifier) NotifyInquiry(inquiry *model.Inquiry) {
	if !n.enabled() {
		return
	}

	phone := ""
	if inquiry.Phone != nil {
		phone = *inquiry.Phone
	}
	message := ""
	if inquiry.Message != nil {
		message = *inquiry.Message
	}

	body := fmt.Sprintf(`<h2>New inquiry</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong> %s</p>`,
		inquiry.Name, inquiry.Email, phone, message)

	n.dispatch("New inquiry from "+inquiry.Name, body)
}

// NotifyApplication emails the dealership about a new credit application.
// Only non-sensitive contact fields go into the email body.
func (n *Notifier) NotifyApplication(app *model.CustomerApplication) {
	if !n.enabled() {
		return
	}

	body := fmt.Sprintf(`<h2>New credit application</h2>
<p><strong>Applicant:</strong> %s %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Application ID:</strong> %s</p>
<p>Full details are in the admin dashboard.</p>`,
		app.Primary.FirstName, app.Primary.LastName,
		app.Primary.Email, app.Primary.Phone, app.ID)

	n.dispatch("New credit application", body)
}
