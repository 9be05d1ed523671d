package job

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TriggerTime is a wall-clock time of day.
type TriggerTime struct {
	Hour   int
	Minute int
}

func (t TriggerTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TriggerSet is an ordered set of daily trigger times in one location.
type TriggerSet struct {
	times []TriggerTime
	loc   *time.Location
}

// ParseTriggerSet parses "HH:MM" specs. Duplicates are dropped and the result
// is sorted.
func ParseTriggerSet(specs []string, loc *time.Location) (*TriggerSet, error) {
	if loc == nil {
		loc = time.Local
	}

	seen := make(map[TriggerTime]struct{}, len(specs))
	times := make([]TriggerTime, 0, len(specs))
	for _, spec := range specs {
		parsed, err := time.Parse("15:04", strings.TrimSpace(spec))
		if err != nil {
			return nil, fmt.Errorf("invalid trigger %q: want HH:MM", spec)
		}
		t := TriggerTime{Hour: parsed.Hour(), Minute: parsed.Minute()}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("at least one trigger time is required")
	}

	sort.Slice(times, func(i, j int) bool {
		if times[i].Hour != times[j].Hour {
			return times[i].Hour < times[j].Hour
		}
		return times[i].Minute < times[j].Minute
	})

	return &TriggerSet{times: times, loc: loc}, nil
}

// Times returns the sorted trigger times.
func (s *TriggerSet) Times() []TriggerTime {
	out := make([]TriggerTime, len(s.times))
	copy(out, s.times)
	return out
}

// Specs returns the trigger times as "HH:MM" strings.
func (s *TriggerSet) Specs() []string {
	out := make([]string, len(s.times))
	for i, t := range s.times {
		out[i] = t.String()
	}
	return out
}

func (s *TriggerSet) Location() *time.Location {
	return s.loc
}

// Next returns the earliest trigger strictly after now, wrapping to the first
// trigger of the following day.
func (s *TriggerSet) Next(now time.Time) time.Time {
	local := now.In(s.loc)
	year, month, day := local.Date()

	for offset := 0; offset <= 1; offset++ {
		for _, t := range s.times {
			candidate := time.Date(year, month, day+offset, t.Hour, t.Minute, 0, 0, s.loc)
			if candidate.After(now) {
				return candidate
			}
		}
	}

	// not reached: tomorrow's first trigger is always after now
	first := s.times[0]
	return time.Date(year, month, day+2, first.Hour, first.Minute, 0, 0, s.loc)
}

// Between counts triggers in (from, to].
func (s *TriggerSet) Between(from, to time.Time) int {
	n := 0
	for t := s.Next(from); !t.After(to); t = s.Next(t) {
		n++
	}
	return n
}
