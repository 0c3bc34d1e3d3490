package mail

import "context"

// NoopMailer discards every message. Used when no SendGrid API key is
// configured and in tests.
type NoopMailer struct{}

func (NoopMailer) SendWelcome(ctx context.Context, email string, name string) error { return nil }
func (NoopMailer) SendGoodbye(ctx context.Context, email string, name string) error { return nil }
