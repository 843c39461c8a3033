package notify

import (
	"fmt"

	"github.com/bloom-app/bloom/internal/engine"
)

// Sink forwards progression events to the tray notifier. Delivery is best
// effort; a missing tray app is silently ignored.
type Sink struct {
	notifier *Notifier
}

func NewSink(notifier *Notifier) *Sink {
	return &Sink{notifier: notifier}
}

func (s *Sink) Notify(ev engine.Event) {
	payload, ok := payloadFor(ev)
	if !ok {
		return
	}
	_ = s.notifier.Notify(payload)
}

// payloadFor maps an engine event to a webhook payload. Store-degraded
// events stay on stderr; they are not worth a desktop popup.
func payloadFor(ev engine.Event) (WebhookPayload, bool) {
	payload := WebhookPayload{Kind: string(ev.Type), Icon: ev.Payload["icon"]}

	switch ev.Type {
	case engine.EventLevelUp:
		payload.Icon = "🌱"
		payload.Text = fmt.Sprintf("Your flower grew to %s!", ev.Payload["name"])
	case engine.EventAchievementUnlocked:
		payload.Text = fmt.Sprintf("Achievement unlocked: %s", ev.Payload["name"])
	default:
		return WebhookPayload{}, false
	}

	return payload, true
}
