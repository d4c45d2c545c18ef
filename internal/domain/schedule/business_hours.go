package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SlotMinutes is the scheduling granularity.
	SlotMinutes = 30
	// SlotsPerDay is the number of 30-minute slots in a day.
	SlotsPerDay = 24 * 60 / SlotMinutes

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidClock = errors.New("clock value must be HH:MM")
	ErrInvalidRange = errors.New("hours range must be HH:MM-HH:MM or \"closed\"")
)

// WeeklySchedule marks each 30-minute slot of each weekday open or closed.
// Indexed by time.Weekday, then by slot index within the day.
type WeeklySchedule [7][SlotsPerDay]bool

// NewWeeklySchedule compiles per-day opening hours into the slot bitmap.
// openTime/closeTime apply to every day; overrides (indexed by time.Weekday)
// replace them with "HH:MM-HH:MM" or "closed". A closing time of "00:00" is
// open through end of day, not a zero-length window; a closing time earlier
// than the opening time crosses midnight, keeping the early-morning slots of
// the same weekday open.
func NewWeeklySchedule(openTime, closeTime string, overrides [7]string) (WeeklySchedule, error) {
	var ws WeeklySchedule

	defaultOpen, defaultClose, err := parseRangeParts(openTime, closeTime)
	if err != nil {
		return ws, err
	}

	for day := 0; day < 7; day++ {
		open, close := defaultOpen, defaultClose

		if ov := strings.TrimSpace(overrides[day]); ov != "" {
			if strings.EqualFold(ov, "closed") {
				continue
			}
			parts := strings.SplitN(ov, "-", 2)
			if len(parts) != 2 {
				return ws, fmt.Errorf("%w: %q", ErrInvalidRange, ov)
			}
			open, close, err = parseRangeParts(parts[0], parts[1])
			if err != nil {
				return ws, err
			}
		}

		markOpen(&ws[day], open, close)
	}

	return ws, nil
}

func parseRangeParts(openStr, closeStr string) (int, int, error) {
	open, err := parseClock(openStr)
	if err != nil {
		return 0, 0, err
	}
	close, err := parseClock(closeStr)
	if err != nil {
		return 0, 0, err
	}
	return open, close, nil
}

func markOpen(day *[SlotsPerDay]bool, openMin, closeMin int) {
	// Midnight close means open through end of day.
	if closeMin == 0 {
		closeMin = minutesPerDay
	}

	if closeMin > openMin {
		for m := openMin; m < closeMin; m += SlotMinutes {
			day[m/SlotMinutes] = true
		}
		return
	}

	// Hours cross midnight: open the evening and the small hours.
	for m := openMin; m < minutesPerDay; m += SlotMinutes {
		day[m/SlotMinutes] = true
	}
	for m := 0; m < closeMin; m += SlotMinutes {
		day[m/SlotMinutes] = true
	}
}

// parseClock parses "HH:MM" into minutes since midnight, "24:00" allowed.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	// "24:00" folds to 0; markOpen treats a zero close as end of day.
	return (h*60 + m) % minutesPerDay, nil
}

// IsOpen reports whether the slot containing the given club-local time is open.
func (ws WeeklySchedule) IsOpen(local time.Time) bool {
	idx := (local.Hour()*60 + local.Minute()) / SlotMinutes
	return ws[local.Weekday()][idx]
}
