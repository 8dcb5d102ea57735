package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
)

// SMTPSender delivers mail through an SMTPS server.
type SMTPSender struct {
	client      *goemail.SMTP
	mailName    string
	mailAddress string
}

// NewSMTPSender connects to host ("host:port") as user/password and sends from
// fromAddress, which may carry a display name ("Contacts <no-reply@...>").
func NewSMTPSender(host, user, password, fromAddress string, skipVerify bool) (*SMTPSender, error) {
	h := fmt.Sprintf("smtps://%v:%v@%v", user, password, host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	addr, err := mail.ParseAddress(fromAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", fromAddress, err)
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: skipVerify,
	}
	client, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, err
	}

	return &SMTPSender{
		client:      client,
		mailName:    addr.Name,
		mailAddress: addr.Address,
	}, nil
}

func (s *SMTPSender) SendVerification(_ context.Context, to, link string) error {
	msg := goemail.NewMessage(s.mailAddress, verificationSubject, verificationBody(link))
	msg.SetName(s.mailName)
	msg.AddTo(to)
	return s.client.Send(msg)
}
