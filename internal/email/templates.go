package email

import (
	"fmt"

	"github.com/osteele/liquid"
)

// ConfirmationSubject is the subject line of every confirmation email.
const ConfirmationSubject = "Welcome!"

const (
	confirmationHTML = `Welcome to our newsletter!<br />Click <a href="{{ link }}">here</a> to confirm your subscription.`
	confirmationText = "Welcome to our newsletter!\nVisit {{ link }} to confirm your subscription."
)

// Templates renders outbound email bodies.
type Templates struct {
	html *liquid.Template
	text *liquid.Template
}

// NewTemplates parses the built-in templates.
func NewTemplates() (*Templates, error) {
	engine := liquid.NewEngine()
	html, err := engine.ParseString(confirmationHTML)
	if err != nil {
		return nil, fmt.Errorf("parse html template: %w", err)
	}
	text, err := engine.ParseString(confirmationText)
	if err != nil {
		return nil, fmt.Errorf("parse text template: %w", err)
	}
	return &Templates{html: html, text: text}, nil
}

// Confirmation builds the message asking the recipient to visit link. The same link is
// placed in both bodies.
func (t *Templates) Confirmation(to, link string) (Message, error) {
	bindings := liquid.Bindings{"link": link}
	html, err := t.html.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}
	text, err := t.text.RenderString(bindings)
	if err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}
	return Message{
		To:       to,
		Subject:  ConfirmationSubject,
		HTMLBody: html,
		TextBody: text,
	}, nil
}
