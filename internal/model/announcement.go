package model

import "time"

// Audience selects who sees an announcement.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceStaff    Audience = "staff"
	AudienceStudents Audience = "students"
	AudienceParents  Audience = "parents"
	AudienceClass    Audience = "class"
)

// Announcement is a notice posted to a branch audience.
type Announcement struct {
	ID         int       `json:"id"`
	BranchID   int       `json:"branch_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Audience   Audience  `json:"audience"`
	ClassID    *int      `json:"class_id"`
	AuthorID   *int      `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	PublishAt  time.Time `json:"publish_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnnouncementRequest is the payload for posting or editing an announcement.
type AnnouncementRequest struct {
	Title     string     `json:"title" binding:"required,min=3,max=200"`
	Body      string     `json:"body" binding:"required,min=1"`
	Audience  Audience   `json:"audience" binding:"required,oneof=all staff students parents class"`
	ClassID   *int       `json:"class_id" binding:"required_if=Audience class"`
	PublishAt *time.Time `json:"publish_at"`
}

// FeedScope describes which announcements a reader may see.
type FeedScope struct {
	BranchID  int
	Audiences []Audience
	ClassIDs  []int
}
