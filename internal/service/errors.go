package service

import (
	"errors"
	"fmt"

	"github.com/richardliu001/newsletter-service/internal/domain"
	"github.com/richardliu001/newsletter-service/internal/repo"
)

// SubscribeErrorKind classifies a failed Subscribe call.
type SubscribeErrorKind int

const (
	SubscribeValidation SubscribeErrorKind = iota + 1
	SubscribePool
	SubscribeInsertSubscriber
	SubscribeStoreToken
	SubscribeStoreEvent
	SubscribeCommit
	SubscribeSendEmail
)

var subscribeKindLabels = map[SubscribeErrorKind]string{
	SubscribeValidation:       "validation_error",
	SubscribePool:             "pool_error",
	SubscribeInsertSubscriber: "insert_subscriber_error",
	SubscribeStoreToken:       "store_token_error",
	SubscribeStoreEvent:       "store_event_error",
	SubscribeCommit:           "commit_error",
	SubscribeSendEmail:        "send_email_error",
}

var subscribeKindMessages = map[SubscribeErrorKind]string{
	SubscribePool:             "Failed to acquire a Postgres connection from the pool.",
	SubscribeInsertSubscriber: "Failed to insert new subscriber in the database.",
	SubscribeStoreToken:       "Failed to store the confirmation token for a new subscriber.",
	SubscribeStoreEvent:       "Failed to record the subscription event.",
	SubscribeCommit:           "Failed to commit SQL transaction to store a new subscriber.",
	SubscribeSendEmail:        "Failed to send a confirmation email.",
}

// String is the metrics label of the kind.
func (k SubscribeErrorKind) String() string {
	if s, ok := subscribeKindLabels[k]; ok {
		return s
	}
	return "unknown"
}

// SubscribeError is the only error type Subscribe returns.
type SubscribeError struct {
	Kind SubscribeErrorKind
	Err  error
}

func (e *SubscribeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *SubscribeError) Unwrap() error { return e.Err }

// Message is safe to return to clients. The submitted email never appears in
// it; Error keeps the full cause for logs.
func (e *SubscribeError) Message() string {
	if e.Kind == SubscribeValidation {
		if errors.Is(e.Err, domain.ErrInvalidName) {
			return e.Err.Error()
		}
		return "Invalid email address."
	}
	if m, ok := subscribeKindMessages[e.Kind]; ok {
		return m
	}
	return "Failed to create a subscriber."
}

// subscribeKindForStep maps a failed transaction step onto its error kind.
func subscribeKindForStep(err error) SubscribeErrorKind {
	var txErr *repo.TxError
	if !errors.As(err, &txErr) {
		return SubscribeInsertSubscriber
	}
	switch txErr.Step {
	case repo.StepBegin:
		return SubscribePool
	case repo.StepStoreToken:
		return SubscribeStoreToken
	case repo.StepStoreEvent:
		return SubscribeStoreEvent
	case repo.StepCommit:
		return SubscribeCommit
	default:
		return SubscribeInsertSubscriber
	}
}

// ConfirmErrorKind classifies a failed Confirm call.
type ConfirmErrorKind int

const (
	ConfirmMissingToken ConfirmErrorKind = iota + 1
	ConfirmTokenNotFound
	ConfirmLookup
	ConfirmUpdate
)

func (k ConfirmErrorKind) String() string {
	switch k {
	case ConfirmMissingToken:
		return "missing_token"
	case ConfirmTokenNotFound:
		return "token_not_found"
	case ConfirmLookup:
		return "lookup_error"
	case ConfirmUpdate:
		return "update_error"
	default:
		return "unknown"
	}
}

// ConfirmError is the only error type Confirm returns.
type ConfirmError struct {
	Kind ConfirmErrorKind
	Err  error
}

func (e *ConfirmError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *ConfirmError) Unwrap() error { return e.Err }

func (e *ConfirmError) Message() string {
	switch e.Kind {
	case ConfirmMissingToken:
		return "Missing confirmation token."
	case ConfirmTokenNotFound:
		return "Unknown confirmation token."
	case ConfirmLookup:
		return "Failed to look up the confirmation token."
	default:
		return "Failed to confirm the subscriber."
	}
}

// PublicMessage returns the client-safe text for any error returned by the
// service. Errors of other types collapse to a generic message.
func PublicMessage(err error) string {
	var se *SubscribeError
	if errors.As(err, &se) {
		return se.Message()
	}
	var ce *ConfirmError
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return "Internal server error."
}
