package note

import "time"

// Input is the create/update payload. Nil fields are left untouched on
// update; only the enumerated fields are overridable, so timestamps and
// the identifier can never be injected through a payload.
type Input struct {
	ClientName   *string
	MeetingDate  *time.Time
	Contact      *ContactInfo
	MeetingType  *MeetingType
	Body         *string
	Requirements *Requirements
	Timeline     *Timeline
	PreApproved  *bool
	FollowUpDate *time.Time
	Tags         *[]string
}

// Helpers for building Inputs in code (tests, seeders).

// String returns a pointer to s.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }

// MeetingTypePtr returns a pointer to m.
func MeetingTypePtr(m MeetingType) *MeetingType { return &m }

// TimelinePtr returns a pointer to tl.
func TimelinePtr(tl Timeline) *Timeline { return &tl }

// Tags returns a pointer to a tag list.
func Tags(tags ...string) *[]string { return &tags }
