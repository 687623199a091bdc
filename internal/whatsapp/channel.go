package whatsapp

import (
	"net/url"
)

// Channel builds wa.me links for a fixed destination phone. Delivery is the
// client's job: opening the link starts a chat with the message pre-filled,
// and this side never learns whether it was sent.
type Channel struct {
	phone string
}

func New(phone string) *Channel {
	return &Channel{phone: phone}
}

func (c *Channel) Link(message string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + c.phone,
		RawQuery: url.Values{"text": {message}}.Encode(),
	}
	return u.String()
}
