package domain

import (
	"fmt"
	"strings"
)

// AttendanceStatus is the status recorded for a participant at an event
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusLate    AttendanceStatus = "late"
	StatusExcused AttendanceStatus = "excused"
	StatusAbsent  AttendanceStatus = "absent"
	StatusSick    AttendanceStatus = "sick"
)

// CountedStatuses participate in the at-most-once-per-identity invariant
var CountedStatuses = []AttendanceStatus{StatusPresent, StatusLate}

// Counted reports whether the status participates in deduplication
func (s AttendanceStatus) Counted() bool {
	return s == StatusPresent || s == StatusLate
}

// Valid reports whether s is one of the known statuses
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusExcused, StatusAbsent, StatusSick:
		return true
	}
	return false
}

// ParseAttendanceStatus parses a case-insensitive status string
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	s := AttendanceStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Origin marks how an attendance entry was captured
type Origin string

const (
	OriginScanned Origin = "scanned"
	OriginManual  Origin = "manual"
)

// Marker is the prefix written into an entry's notes
func (o Origin) Marker() string {
	return "[" + string(o) + "]"
}

// NotesWithMarker prefixes notes with the origin marker
func NotesWithMarker(origin Origin, notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return origin.Marker()
	}
	return origin.Marker() + " " + notes
}

// Outcome is the non-error result of a redemption or manual entry
type Outcome string

const (
	// OutcomeRecorded means a new attendance entry was created
	OutcomeRecorded Outcome = "recorded"
	// OutcomeAlreadyRecorded means a counted entry already existed; nothing was written
	OutcomeAlreadyRecorded Outcome = "already_recorded"
)
