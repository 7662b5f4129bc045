package utils

import (
	"fmt"
	"time"

	"github.com/dsp-hub/workforce-manager/backend/internal/domain"
)

// ValidateShiftTimes checks a shift's time strings parse and are ordered.
// Overnight shifts store their two halves as separate shifts, so end must
// not precede start.
func ValidateShiftTimes(s *domain.Shift) error {
	startTime, err := time.Parse("15:04:05", s.StartTime)
	if err != nil {
		return fmt.Errorf("shift start time %q is not HH:MM:SS", s.StartTime)
	}
	endTime, err := time.Parse("15:04:05", s.EndTime)
	if err != nil {
		return fmt.Errorf("shift end time %q is not HH:MM:SS", s.EndTime)
	}
	if endTime.Before(startTime) {
		return fmt.Errorf("shift end time cannot be before its start time")
	}
	return nil
}
