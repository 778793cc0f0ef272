package service

import "context"

// EmailKind tags the kind of transactional email to send. Each kind selects
// its own subject and body in the sender; dispatch is a plain switch rather
// than a type hierarchy.
type EmailKind int

const (
	// EmailAccountVerification carries the link a new account uses to confirm
	// its email address. Data keys: "email", "name", "token".
	EmailAccountVerification EmailKind = iota
)

// MailSender delivers transactional emails. Implementations decide transport;
// delivery failures must not take down the request that triggered them.
type MailSender interface {
	Send(ctx context.Context, kind EmailKind, recipient string, data map[string]string) error
}
