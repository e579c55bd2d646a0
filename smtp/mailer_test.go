package smtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
)

func TestSendNewsletterUnconfiguredTransport(t *testing.T) {
	m := NewMailer(&visiontech.Config{}, "http://localhost")

	_, err := m.SendNewsletter(
		&visiontech.Newsletter{Title: "Issue 1", Content: "<p>hi</p>"},
		&visiontech.Subscriber{Email: "a@x.com", UnsubscribeToken: "tok"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mail transport configured")
}

func TestSendWelcomeEmailUnconfiguredTransport(t *testing.T) {
	m := NewMailer(&visiontech.Config{}, "http://localhost")

	err := m.SendWelcomeEmail(&visiontech.Subscriber{Email: "a@x.com", Name: "A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mail transport configured")
}
