// Package mail sends transactional account emails. Delivery is best-effort:
// callers dispatch and never wait for, retry, or surface the outcome.
package mail

import "context"

// Mailer delivers the account lifecycle emails.
type Mailer interface {
	// SendWelcome greets a freshly registered user.
	SendWelcome(ctx context.Context, email string, name string) error
	// SendGoodbye says farewell after account deletion.
	SendGoodbye(ctx context.Context, email string, name string) error
}
