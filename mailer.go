package visiontech

// Mailer is the interface that wraps the outbound mail transport
type Mailer interface {
	SendNewsletter(n *Newsletter, sub *Subscriber) (messageID string, err error)
	SendWelcomeEmail(sub *Subscriber) error
}

// DeliveryResult records one delivery attempt for one recipient.
type DeliveryResult struct {
	Email     string `json:"email"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}
