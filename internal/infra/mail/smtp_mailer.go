// Package mail implements the outgoing mail service on top of an SMTP server.
package mail

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"

	"addrbook/config"
	"addrbook/internal/domain/service"
	"addrbook/internal/errors"
)

// smtpMailer sends transactional mail from a preset sender address.
// When no SMTP URL is configured the mailer runs disabled and every send
// is a logged no-op, which keeps local development free of a mail server.
type smtpMailer struct {
	smtp          *goemail.SMTP // SMTP server
	senderName    string        // From name
	senderAddress string        // From email address
	verifyBaseURL string        // Prefix of the verification link
	disabled      bool          // Has email been disabled
	logger        *slog.Logger
}

// NewSMTPMailer constructs the mailer from config. Mail is considered
// disabled when explicitly turned off or when no SMTP URL is set.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	smtpCfg := cfg.SMTP
	if smtpCfg == nil || smtpCfg.Disabled || smtpCfg.URL == "" {
		logger.Info("mail: DISABLED")

		return &smtpMailer{disabled: true, logger: logger}, nil
	}

	u, err := url.Parse(smtpCfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "parse smtp url")
	}

	addr, err := mail.ParseAddress(smtpCfg.SenderAddress)
	if err != nil {
		return nil, errors.Wrap(err, "parse sender address")
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: smtpCfg.SkipVerify, //nolint:gosec // Operator opt-in for self-signed SMTP certs.
	}

	smtp, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, errors.Wrap(err, "setup smtp client")
	}

	logger.Info("mail: enabled", slog.String("host", u.Host), slog.String("sender", addr.Address))

	return &smtpMailer{
		smtp:          smtp,
		senderName:    smtpCfg.SenderName,
		senderAddress: addr.Address,
		verifyBaseURL: smtpCfg.VerifyBaseURL,
		logger:        logger,
	}, nil
}

// IsEnabled returns whether the mail server is enabled.
func (m *smtpMailer) IsEnabled() bool {
	return !m.disabled
}

// SendVerificationEmail sends the account verification link to the recipient.
func (m *smtpMailer) SendVerificationEmail(recipientName, recipientEmail, token string) error {
	if m.disabled {
		m.logger.Info("mail disabled, skipping verification email",
			slog.String("email", recipientEmail))

		return nil
	}

	verificationURL := m.verifyBaseURL + "/" + url.PathEscape(token)
	body := verificationEmailBody(recipientName, verificationURL)

	msg := goemail.NewHTMLMessage(m.senderAddress, verificationEmailSubject, body)
	msg.SetName(m.senderName)
	msg.AddTo(recipientEmail)

	if err := m.smtp.Send(msg); err != nil {
		return errors.Wrap(err, "send verification email")
	}

	return nil
}

const verificationEmailSubject = "Email Verification"

func verificationEmailBody(name, verificationURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #4a5568;">Welcome, %s!</h1>
  <p>Thank you for registering. Please verify your email address by clicking the link below:</p>
  <div style="margin: 25px 0;">
    <a href="%s"
       style="background-color: #4299e1; color: white; padding: 10px 20px;
              text-decoration: none; border-radius: 5px; font-weight: bold;">
      Verify Email
    </a>
  </div>
  <p>If you did not create an account, no further action is required.</p>
  <hr style="border: 1px solid #e2e8f0; margin: 20px 0;" />
  <p style="color: #718096; font-size: 0.875rem;">
    If you're having trouble clicking the button, copy and paste the URL below into your web browser:
  </p>
  <p style="color: #4a5568; word-break: break-all;">%s</p>
</div>
`, name, verificationURL, verificationURL)
}
