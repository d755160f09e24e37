// Package domain holds the validated value types a subscription request is parsed into.
package domain

// NewSubscriber is a subscribe request whose fields have both been validated.
type NewSubscriber struct {
	Name  SubscriberName
	Email SubscriberEmail
}

// NewSubscriberFromForm parses the name first and stops at the first failure.
func NewSubscriberFromForm(rawName, rawEmail string) (NewSubscriber, error) {
	name, err := ParseSubscriberName(rawName)
	if err != nil {
		return NewSubscriber{}, err
	}
	email, err := ParseSubscriberEmail(rawEmail)
	if err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Name: name, Email: email}, nil
}
