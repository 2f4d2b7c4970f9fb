package booking

import (
	"context"
	"errors"
	"fmt"

	"hotelier/internal/domain"
)

// NoShowSweep cancels reserved bookings whose check-in date has passed
// without a check-in and releases their rooms. It is idempotent and
// single-flight: a run that finds another in progress reports Skipped
// and does nothing. Per-item failures are collected and logged; one
// bad booking never aborts the rest.
func (s *Service) NoShowSweep(ctx context.Context) (*SweepReport, error) {
	if !s.sweepMu.TryLock() {
		s.loggerf("level=info msg=no-show sweep already in flight, skipping")
		return &SweepReport{Skipped: true}, nil
	}
	defer s.sweepMu.Unlock()

	stale, err := s.bookings.ListNoShows(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("list no-shows: %w", err)
	}

	report := &SweepReport{Scanned: len(stale)}
	for i := range stale {
		b := &stale[i]
		if _, err := s.transition(ctx, b.ID, domain.BookingCancelled, nil); err != nil {
			if errors.Is(err, ErrInvalidStatusTransition) {
				// Raced into another state since the scan; already
				// handled elsewhere.
				continue
			}
			report.Failures = append(report.Failures, SweepFailure{BookingID: b.ID, Reason: err.Error()})
			s.loggerf("level=error msg=no-show cancellation failed booking_id=%d err=%v", b.ID, err)
			continue
		}
		report.Cancelled++
	}

	s.loggerf("level=info msg=no-show sweep finished scanned=%d cancelled=%d failed=%d",
		report.Scanned, report.Cancelled, len(report.Failures))
	return report, nil
}
