package model

// Guest identity shown when nobody is signed in and no profile has been
// saved. These values are fixed; the UI builds initials and greetings from
// them, so changing them changes what anonymous visitors see.
const (
	GuestName  = "Alex Turner"
	GuestEmail = "alex.turner@example.com"
)

// Profile is the denormalized bundle of personally-identifying and
// preference fields. It exists in two places: embedded in Account
// (Account.ProfileData) and standalone under the "profileData" store key.
type Profile struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	DateOfBirth  string   `json:"dateOfBirth"`
	Gender       string   `json:"gender"`
	College      string   `json:"college"`
	Branch       string   `json:"branch"`
	Year         string   `json:"year"`
	PassingYear  string   `json:"passingYear"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Bio          string   `json:"bio"`
	GitHubURL    string   `json:"githubUrl"`
	LinkedInURL  string   `json:"linkedinUrl"`
	PortfolioURL string   `json:"portfolioUrl"`
	Skills       []string `json:"skills"`
	Interests    []string `json:"interests"`
}

// NewProfile seeds a profile for a freshly registered account. Only the
// identity and contact fields are filled; everything else starts empty.
func NewProfile(name, email, phone, college string) Profile {
	return Profile{
		Name:      name,
		Email:     email,
		Phone:     phone,
		College:   college,
		Skills:    []string{},
		Interests: []string{},
	}
}

// GuestProfile returns the fixed default profile for anonymous visitors.
func GuestProfile() Profile {
	return Profile{
		Name:      GuestName,
		Email:     GuestEmail,
		Skills:    []string{},
		Interests: []string{},
	}
}
