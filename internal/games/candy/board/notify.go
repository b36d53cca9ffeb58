package board

import "time"

// Timer is a one-shot deadline on the session clock. Only one deadline is
// pending at a time: scheduling again replaces the previous one.
type Timer struct {
	deadline time.Duration
	armed    bool
}

// Schedule arms the timer to fire at now+delay.
func (t *Timer) Schedule(now, delay time.Duration) {
	t.deadline = now + delay
	t.armed = true
}

// Cancel disarms the timer.
func (t *Timer) Cancel() {
	t.armed = false
}

// Armed reports whether a deadline is pending.
func (t *Timer) Armed() bool {
	return t.armed
}

// Deadline returns the pending deadline, if any.
func (t *Timer) Deadline() (time.Duration, bool) {
	return t.deadline, t.armed
}

// Fire reports whether the deadline has passed at now, and disarms the timer if so.
func (t *Timer) Fire(now time.Duration) bool {
	if !t.armed || now < t.deadline {
		return false
	}
	t.armed = false
	return true
}

// Notifier holds the transient message shown to the player.
type Notifier struct {
	text     string
	duration time.Duration
	timer    Timer
}

// NewNotifier creates a notifier whose messages last for duration.
// A zero duration keeps messages until replaced or cleared.
func NewNotifier(duration time.Duration) *Notifier {
	return &Notifier{duration: duration}
}

// Show replaces the current message. The previous clear is cancelled so it
// cannot cut the new message short.
func (n *Notifier) Show(text string, now time.Duration) {
	n.timer.Cancel()
	n.text = text
	if n.duration > 0 {
		n.timer.Schedule(now, n.duration)
	}
}

// Clear drops the current message immediately.
func (n *Notifier) Clear() {
	n.timer.Cancel()
	n.text = ""
}

// Update clears the message once its timer fires. Returns true if it did.
func (n *Notifier) Update(now time.Duration) bool {
	if n.timer.Fire(now) {
		n.text = ""
		return true
	}
	return false
}

// Text returns the current message, or "" when none is shown.
func (n *Notifier) Text() string {
	return n.text
}
