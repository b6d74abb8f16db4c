package mailer

import "gopkg.in/gomail.v2"

// Mailer sends the post-confirmation email to the configured address. The
// whole feature is optional; the caller skips it when SMTP is not configured.
type Mailer struct {
	host     string
	port     int
	from     string
	password string
	to       string
}

func New(host string, port int, from, password, to string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
		to:       to,
	}
}

func (m *Mailer) ListingPosted(listingTitle string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "Your listing is live")
	msg.SetBody("text/plain", "Your listing '"+listingTitle+"' has been posted successfully.")

	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(msg)
}
