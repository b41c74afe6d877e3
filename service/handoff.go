package service

import (
	"net/url"
	"strings"
	"unicode"
)

const whatsAppBaseURL = "https://wa.me/"

// Handoff builds the outbound WhatsApp link an order summary is sent through
type Handoff struct {
	phone    string
	greeting string
}

// NewHandoff creates a Handoff for phone. Formatting characters in the phone
// number are dropped; greeting, when set, opens every message.
func NewHandoff(phone, greeting string) *Handoff {
	return &Handoff{phone: digitsOnly(phone), greeting: strings.TrimSpace(greeting)}
}

// Message prefixes summary with the greeting.
func (h *Handoff) Message(summary string) string {
	if h.greeting == "" {
		return summary
	}
	return h.greeting + "\n\n" + summary
}

// Link returns https://wa.me/<phone>?text=<message>.
func (h *Handoff) Link(summary string) string {
	return BuildWhatsAppLink(h.phone, h.Message(summary))
}

// BuildWhatsAppLink encodes text into a wa.me link. Spaces are encoded as
// %20 since WhatsApp shows a literal "+" otherwise.
func BuildWhatsAppLink(phone, text string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return whatsAppBaseURL + digitsOnly(phone) + "?text=" + encoded
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
