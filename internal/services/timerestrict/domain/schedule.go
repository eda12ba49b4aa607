package domain

// Schedule maps each day to an optional restriction window. The zero value
// restricts nothing. Schedule is a value type; copies are independent.
type Schedule struct {
	days [7]scheduleEntry
}

type scheduleEntry struct {
	window Window
	set    bool
}

// DefaultSchedule restricts Saturday and Sunday from 23:00 to 07:00.
func DefaultSchedule() Schedule {
	weekend := Window{Start: MustTimeOfDay(23, 0), End: MustTimeOfDay(7, 0)}
	var s Schedule
	s.Set(Saturday, weekend)
	s.Set(Sunday, weekend)
	return s
}

// Window returns the window for day and whether one is set.
func (s Schedule) Window(day Day) (Window, bool) {
	if !day.Valid() {
		return Window{}, false
	}
	entry := s.days[day-1]
	return entry.window, entry.set
}

// Set assigns the window for day. Invalid days are ignored.
func (s *Schedule) Set(day Day, window Window) {
	if !day.Valid() {
		return
	}
	s.days[day-1] = scheduleEntry{window: window, set: true}
}

// Clear removes the window for day and reports whether one was set.
func (s *Schedule) Clear(day Day) bool {
	if !day.Valid() {
		return false
	}
	had := s.days[day-1].set
	s.days[day-1] = scheduleEntry{}
	return had
}

// Empty reports whether no day is restricted.
func (s Schedule) Empty() bool {
	for _, entry := range s.days {
		if entry.set {
			return false
		}
	}
	return true
}
