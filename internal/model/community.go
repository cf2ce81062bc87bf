package model

import "time"

// Priority levels a deadline can carry. Stored as plain strings so the
// persisted JSON matches what the frontend writes.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidPriority reports whether p is one of the four known levels.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Community is one hackathon team community. The chat log and the deadline
// tracker are embedded rather than stored in separate collections — reading
// a community gives you everything, and writing one persists everything.
type Community struct {
	ID                  string     `json:"id"`
	CommunityName       string     `json:"communityName"`
	HackathonName       string     `json:"hackathonName"`
	ProjectDomain       string     `json:"projectDomain"`
	ProjectName         string     `json:"projectName"`
	Description         string     `json:"description,omitempty"`
	HackathonURL        string     `json:"hackathonUrl,omitempty"`
	CommunityGuidelines string     `json:"communityGuidelines,omitempty"`
	ContactEmail        string     `json:"contactEmail,omitempty"`
	NumberOfMembers     int        `json:"numberOfMembers,omitempty"`
	Members             []string   `json:"members"`
	Messages            []Message  `json:"messages"`
	Deadlines           []Deadline `json:"deadlines"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// Message is one chat entry. Messages are append-only; there is no edit or
// delete operation anywhere in the system.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Deadline is one tracked date inside a community. Date is kept as the
// "2006-01-02" string the date picker produces; "days until" is always
// computed from it at read time, never stored.
type Deadline struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaggedDeadline is a deadline annotated with its owning community, as
// returned by the global deadline listing.
type TaggedDeadline struct {
	Deadline
	CommunityID   string `json:"communityId"`
	CommunityName string `json:"communityName"`
}

// JoinedCommunity is the point-in-time copy of a community stored in a
// user's aggregate when they join. It is a snapshot: messages or deadlines
// added to the registry copy afterwards do not appear here.
type JoinedCommunity struct {
	Community
	JoinedAt time.Time `json:"joinedAt"`
}
