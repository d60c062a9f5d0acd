package usecase

// Notifier is the outbound-email collaborator. The reset and contact flows
// only depend on this contract, never on a concrete mail transport.
type Notifier interface {
	Send(subject, htmlBody, to, from, replyTo string) error
}
