package alerting

import (
	"strings"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
)

// DefaultDedupWindow is how long an identical message is withheld.
const DefaultDedupWindow = 24 * time.Hour

// Deduplicator suppresses notifications a user has effectively already had.
//
// Admit and the subsequent insert are separate statements, so two producers
// racing on the same message can both be admitted. The rules are advisory.
type Deduplicator struct {
	store  NotificationStore
	clock  clock.Clock
	window time.Duration
}

// NewDeduplicator creates a Deduplicator. A non-positive window uses DefaultDedupWindow.
func NewDeduplicator(store NotificationStore, clk clock.Clock, window time.Duration) *Deduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &Deduplicator{store: store, clock: clk, window: window}
}

// Admit reports whether message may be sent to the user: false when the
// same message was created for them within the window (createdAt > now-window).
func (d *Deduplicator) Admit(userID, message string) (bool, error) {
	since := d.clock.Now().Add(-d.window).UTC()
	seen, err := d.store.HasMessageSince(userID, message, since)
	if err != nil {
		return false, err
	}
	return !seen, nil
}

// AdmitBillReminder reports whether a reminder for billName may be sent:
// false when any notification created today, in the clock's location,
// mentions the bill name.
func (d *Deduplicator) AdmitBillReminder(userID, billName string) (bool, error) {
	now := d.clock.Now()
	recent, err := d.store.ListCreatedSince(userID, calendar.StartOfDay(now).UTC())
	if err != nil {
		return false, err
	}

	for i := range recent {
		n := &recent[i]
		if calendar.SameDay(n.CreatedAt.In(now.Location()), now) && strings.Contains(n.Message, billName) {
			return false, nil
		}
	}
	return true, nil
}
