// Package refresh broadcasts typed "data changed" events so open portals
// know which lists to re-fetch.
package refresh

import (
	"slices"
	"time"
)

// Topic names the kind of record that changed.
type Topic string

const (
	TopicBranches       Topic = "branches"
	TopicUsers          Topic = "users"
	TopicStudents       Topic = "students"
	TopicClasses        Topic = "classes"
	TopicStaff          Topic = "staff"
	TopicAttendance     Topic = "attendance"
	TopicLeaves         Topic = "leaves"
	TopicTimetable      Topic = "timetable"
	TopicHostel         Topic = "hostel"
	TopicTransport      Topic = "transport"
	TopicLibrary        Topic = "library"
	TopicFees           Topic = "fees"
	TopicPayments       Topic = "payments"
	TopicAnnouncements  Topic = "announcements"
	TopicRectifications Topic = "rectifications"
	TopicSettings       Topic = "settings"
)

// AllTopics lists every topic a client may subscribe to.
var AllTopics = []Topic{
	TopicBranches, TopicUsers, TopicStudents, TopicClasses, TopicStaff,
	TopicAttendance, TopicLeaves, TopicTimetable, TopicHostel, TopicTransport,
	TopicLibrary, TopicFees, TopicPayments, TopicAnnouncements,
	TopicRectifications, TopicSettings,
}

// IsValid reports whether t is a known topic.
func (t Topic) IsValid() bool { return slices.Contains(AllTopics, t) }

// Action is what happened to the record.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is the payload delivered to subscribers.
type Event struct {
	Topic      Topic     `json:"topic"`
	Action     Action    `json:"action"`
	BranchID   int       `json:"branch_id"`
	EntityID   string    `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Filter selects events for a subscriber. Empty Topics matches every topic;
// BranchID 0 matches every branch.
type Filter struct {
	Topics   []Topic
	BranchID int
}

// Match reports whether e passes the filter.
func (f Filter) Match(e Event) bool {
	if f.BranchID != 0 && e.BranchID != f.BranchID {
		return false
	}
	if len(f.Topics) == 0 {
		return true
	}
	return slices.Contains(f.Topics, e.Topic)
}
