package service

// Mailer defines the interface for outgoing transactional mail.
// Implementations may be disabled entirely, in which case sends are no-ops.
type Mailer interface {
	// IsEnabled returns whether the mail server is enabled.
	IsEnabled() bool

	// SendVerificationEmail sends the account verification link to the
	// recipient. The token is embedded in the link.
	SendVerificationEmail(recipientName, recipientEmail, token string) error
}
