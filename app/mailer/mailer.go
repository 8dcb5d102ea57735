// Package mailer sends transactional mail. Sending is best-effort: callers
// fire it off the request path and only log failures.
package mailer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Sender delivers a verification mail containing link to the given address.
type Sender interface {
	SendVerification(ctx context.Context, to, link string) error
}

const verificationSubject = "Confirm your registration"

func verificationBody(link string) string {
	return fmt.Sprintf(`Hello,

Please confirm your registration by following the link below:

%s

Thank you.
`, link)
}

// LogSender writes the mail to the log instead of delivering it. Used in
// development and whenever SMTP is not configured.
type LogSender struct {
	Log zerolog.Logger
}

func (s *LogSender) SendVerification(_ context.Context, to, link string) error {
	s.Log.Info().
		Str("to", to).
		Str("subject", verificationSubject).
		Str("link", link).
		Msg("verification mail (not delivered, smtp disabled)")
	return nil
}
