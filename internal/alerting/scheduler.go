package alerting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// DefaultSchedule fires at second zero of every minute.
const DefaultSchedule = "0 * * * * *"

// BillError records a bill the sweep failed to process.
type BillError struct {
	BillID string
	UserID string
	Err    error
}

func (e BillError) Error() string {
	return fmt.Sprintf("bill %s: %v", e.BillID, e.Err)
}

// SweepResult contains the outcome of one pass over all bills.
type SweepResult struct {
	BillsScanned  int
	RemindersSent int
	Suppressed    int
	// Skipped counts bills without a due date.
	Skipped  int
	Errors   []BillError
	Duration time.Duration
}

type reminderOutcome int

const (
	outcomeNotDue reminderOutcome = iota
	outcomeSkipped
	outcomeSuppressed
	outcomeSent
)

// BillReminderScheduler sends each bill's advance reminder at its reminder moment.
//
// A reminder fires only in the sweep whose minute matches exactly. A sweep
// that does not run at that minute loses the reminder for the cycle; there
// is no catch-up.
type BillReminderScheduler struct {
	bills    BillFinder
	dedup    *Deduplicator
	sink     *Sink
	clock    clock.Clock
	messages Messages

	mu   sync.Mutex
	cron *cron.Cron
}

// NewBillReminderScheduler creates a scheduler. Call Start or Run to begin sweeping.
func NewBillReminderScheduler(bills BillFinder, dedup *Deduplicator, sink *Sink, clk clock.Clock, messages Messages) *BillReminderScheduler {
	return &BillReminderScheduler{
		bills:    bills,
		dedup:    dedup,
		sink:     sink,
		clock:    clk,
		messages: messages,
	}
}

// IsDue reports whether now is the bill's reminder moment: the calendar day
// nextDueDate minus daysBefore, at the reminder hour and minute.
func IsDue(bill *models.RecurringBill, now time.Time) bool {
	reminderDate, ok := bill.ReminderDate()
	if !ok {
		return false
	}
	return calendar.SameDay(reminderDate, now) &&
		now.Hour() == bill.EffectiveReminderHour() &&
		now.Minute() == bill.EffectiveReminderMinute()
}

// Sweep checks every bill against now, sending reminders that are due.
// A failure on one bill is recorded and the sweep moves on.
func (s *BillReminderScheduler) Sweep(now time.Time) (*SweepResult, error) {
	start := time.Now()
	log := logger.Get()

	bills, err := s.bills.GetAllBills()
	if err != nil {
		return nil, fmt.Errorf("list recurring bills: %w", err)
	}

	result := &SweepResult{BillsScanned: len(bills)}
	for i := range bills {
		bill := &bills[i]

		outcome, err := s.remind(bill, now)
		if err != nil {
			log.Errorw("Failed to process bill reminder",
				"bill_id", bill.ID, "user_id", bill.UserID, "error", err)
			result.Errors = append(result.Errors, BillError{BillID: bill.ID, UserID: bill.UserID, Err: err})
			continue
		}

		switch outcome {
		case outcomeSkipped:
			result.Skipped++
		case outcomeSuppressed:
			result.Suppressed++
		case outcomeSent:
			result.RemindersSent++
			log.Infow("Bill reminder sent", "bill_id", bill.ID, "user_id", bill.UserID)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (s *BillReminderScheduler) remind(bill *models.RecurringBill, now time.Time) (outcome reminderOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if bill.NextDueDate == nil {
		return outcomeSkipped, nil
	}
	if !IsDue(bill, now) {
		return outcomeNotDue, nil
	}

	admitted, err := s.dedup.AdmitBillReminder(bill.UserID, bill.Name)
	if err != nil {
		return outcomeNotDue, err
	}
	if !admitted {
		return outcomeSuppressed, nil
	}

	message := s.messages.BillReminder(bill.Name, bill.Amount, bill.EffectiveReminderDaysBefore())
	n, err := s.sink.Create(bill.UserID, message)
	if err != nil {
		return outcomeNotDue, err
	}
	if n == nil {
		return outcomeSuppressed, nil
	}
	return outcomeSent, nil
}

func (s *BillReminderScheduler) tick() {
	result, err := s.Sweep(s.clock.Now())
	if err != nil {
		logger.Get().Errorw("Bill reminder sweep failed", "error", err)
		return
	}

	logger.Get().Debugw("Bill reminder sweep finished",
		"bills_scanned", result.BillsScanned,
		"reminders_sent", result.RemindersSent,
		"suppressed", result.Suppressed,
		"skipped", result.Skipped,
		"errors", len(result.Errors),
		"duration", result.Duration,
	)
}

// Start schedules sweeps on spec, a six-field cron expression with seconds,
// evaluated in loc. A tick that comes due while the previous sweep is still
// running is skipped.
func (s *BillReminderScheduler) Start(spec string, loc *time.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errors.New("bill reminder scheduler already started")
	}
	if loc == nil {
		loc = time.Local
	}

	l := logger.Cron()
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	if _, err := c.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	logger.Get().Infow("Bill reminder scheduler started", "schedule", spec, "location", loc.String())
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *BillReminderScheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	logger.Get().Info("Bill reminder scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *BillReminderScheduler) Run(ctx context.Context, spec string, loc *time.Location) error {
	if err := s.Start(spec, loc); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}
