package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestLink(t *testing.T) {
	ch := New("5493410000000")
	link := ch.Link("Hola! Pedido: Oregano x2 — $20.000")

	if !strings.HasPrefix(link, "https://wa.me/5493410000000?text=") {
		t.Fatalf("unexpected link %q", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if got := u.Query().Get("text"); got != "Hola! Pedido: Oregano x2 — $20.000" {
		t.Fatalf("message did not round-trip through encoding: %q", got)
	}
}
