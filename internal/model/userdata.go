package model

import "time"

// UserData is the per-user aggregate record, keyed by user id in the store.
// It holds denormalized copies (not references) of everything the user has
// joined, created, or registered for, plus two counters and the
// contribution history feed.
type UserData struct {
	Communities         []JoinedCommunity    `json:"communities"`
	Projects            []Project            `json:"projects"`
	Hackathons          []JoinedHackathon    `json:"hackathons"`
	Contributions       int                  `json:"contributions"`
	ProfileViews        int                  `json:"profileViews"`
	ContributionHistory []ContributionRecord `json:"contributionHistory"`
}

// EmptyUserData returns an aggregate with every list present and empty.
// Reads of a missing or partial record are normalized through this shape so
// callers never see nil slices.
func EmptyUserData() UserData {
	return UserData{
		Communities:         []JoinedCommunity{},
		Projects:            []Project{},
		Hackathons:          []JoinedHackathon{},
		ContributionHistory: []ContributionRecord{},
	}
}

// Normalize fills in any lists a stored record is missing.
func (u *UserData) Normalize() {
	if u.Communities == nil {
		u.Communities = []JoinedCommunity{}
	}
	if u.Projects == nil {
		u.Projects = []Project{}
	}
	if u.Hackathons == nil {
		u.Hackathons = []JoinedHackathon{}
	}
	if u.ContributionHistory == nil {
		u.ContributionHistory = []ContributionRecord{}
	}
}

// Project is a project the user created.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Domain      string    `json:"domain,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Hackathon is one entry in the hackathon catalog.
type Hackathon struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Logo            string   `json:"logo,omitempty"`
	Community       string   `json:"community,omitempty"`
	Prize           string   `json:"prize,omitempty"`
	Status          string   `json:"status,omitempty"`
	OfficialWebsite string   `json:"officialWebsite,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	IsFree          bool     `json:"isFree,omitempty"`
	TeamSize        string   `json:"teamSize,omitempty"`
	Description     string   `json:"description,omitempty"`
	Eligibility     string   `json:"eligibility,omitempty"`
	Themes          []string `json:"themes,omitempty"`
}

// JoinedHackathon is a catalog entry stamped with the registration time.
type JoinedHackathon struct {
	Hackathon
	RegisteredAt time.Time `json:"registeredAt"`
}

// ContributionRecord is one entry in the contribution history feed.
type ContributionRecord struct {
	Description string    `json:"description,omitempty"`
	Community   string    `json:"community,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
