package service

import (
	"context"
	"log/slog"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/model"
)

// hackathonCatalog is the fixed set of upcoming hackathons shown on the
// discovery page. Entries are curated, not user-created.
var hackathonCatalog = []model.Hackathon{
	{
		ID:              "1",
		Name:            "Cosmohack1",
		Logo:            "🌌",
		Community:       "Sourcify community",
		Prize:           "₹ 25",
		Status:          "Online",
		OfficialWebsite: "https://cosmohack.dev",
		Tags:            []string{"Hackathon", "Undergraduate"},
		IsFree:          true,
		TeamSize:        "1 - 4 Members",
		Description:     "Cosmohack1 is a space-themed hackathon focusing on innovative solutions for space exploration and satellite technology. Build projects that push the boundaries of aerospace engineering and astronomy.",
		Eligibility:     "Open to undergraduate students worldwide",
		Themes:          []string{"Space Technology", "Satellite Systems", "Astronomy", "Data Science"},
	},
	{
		ID:              "2",
		Name:            "AlgoSSTrike",
		Logo:            "⚡",
		Community:       "Scaler School of Technology, Bengaluru, Karnataka",
		Prize:           "₹ 45,000",
		Status:          "Online",
		OfficialWebsite: "https://algosstrike.dev",
		Tags:            []string{"Hackathon", "Undergraduate", "Postgraduate"},
		IsFree:          true,
		TeamSize:        "2 - 5 Members",
		Description:     "AlgoSSTrike is a competitive programming and algorithm-focused hackathon. Solve complex algorithmic challenges, build efficient solutions, and compete with the best minds in data structures and algorithms.",
		Eligibility:     "Open to undergraduate and postgraduate students",
		Themes:          []string{"Algorithms", "Data Structures", "Competitive Programming", "Problem Solving"},
	},
	{
		ID:              "3",
		Name:            "Code Against Clock",
		Logo:            "⏱️",
		Community:       "Scaler School of Technology, Bengaluru, Karnataka",
		Prize:           "₹ 25,000",
		Status:          "Online",
		OfficialWebsite: "https://codeagainstclock.dev",
		Tags:            []string{"Hackathon", "Undergraduate", "Postgraduate"},
		IsFree:          true,
		TeamSize:        "1 - 4 Members",
		Description:     "Code Against Clock is a time-bound coding competition where speed meets accuracy. Race against time to build functional prototypes, solve real-world problems, and showcase your rapid development skills.",
		Eligibility:     "Open to all students",
		Themes:          []string{"Rapid Development", "Full Stack", "API Integration", "DevOps"},
	},
	{
		ID:              "4",
		Name:            "MLH HackCon 2025",
		Logo:            "🎯",
		Community:       "Major League Hacking",
		Prize:           "₹ 2,50,000",
		Status:          "Hybrid",
		OfficialWebsite: "https://hackcon.mlh.io",
		Tags:            []string{"Hackathon", "International", "All Levels"},
		IsFree:          true,
		TeamSize:        "1 - 6 Members",
		Description:     "MLH HackCon is one of the largest student hackathons globally. Join thousands of hackers worldwide to build innovative projects across various domains including AI, blockchain, IoT, and social impact.",
		Eligibility:     "Open to all students worldwide",
		Themes:          []string{"Artificial Intelligence", "Blockchain", "IoT", "Social Impact", "Web3"},
	},
	{
		ID:              "5",
		Name:            "ETHIndia 2025",
		Logo:            "⛓️",
		Community:       "DevFolio",
		Prize:           "₹ 15,00,000",
		Status:          "In-Person",
		OfficialWebsite: "https://ethindia.co",
		Tags:            []string{"Hackathon", "Blockchain", "Web3"},
		IsFree:          true,
		TeamSize:        "2 - 5 Members",
		Description:     "ETHIndia is India's largest Ethereum hackathon. Build decentralized applications, explore DeFi, NFTs, DAOs, and Web3 infrastructure. Connect with blockchain experts and venture capitalists.",
		Eligibility:     "Open to developers, designers, and blockchain enthusiasts",
		Themes:          []string{"Ethereum", "DeFi", "NFTs", "Smart Contracts", "Web3", "DAOs"},
	},
}

// HackathonService exposes the hackathon catalog and handles user
// registrations against it.
type HackathonService struct {
	userData *UserDataService
	logger   *slog.Logger
}

func NewHackathonService(userData *UserDataService, logger *slog.Logger) *HackathonService {
	return &HackathonService{
		userData: userData,
		logger:   logger.With("service", "hackathon"),
	}
}

// List returns every catalog entry in display order.
func (s *HackathonService) List() []model.Hackathon {
	out := make([]model.Hackathon, len(hackathonCatalog))
	copy(out, hackathonCatalog)
	return out
}

// GetByID looks up a single catalog entry.
func (s *HackathonService) GetByID(id string) (*model.Hackathon, error) {
	for _, h := range hackathonCatalog {
		if h.ID == id {
			entry := h
			return &entry, nil
		}
	}
	return nil, apperror.NotFound("hackathon", id)
}

// Register records the signed-in user's registration for a catalog
// hackathon. Registering twice for the same hackathon is an error.
func (s *HackathonService) Register(ctx context.Context, session *model.Session, hackathonID string) (*model.Hackathon, error) {
	if session == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	entry, err := s.GetByID(hackathonID)
	if err != nil {
		return nil, err
	}

	if err := s.userData.RegisterForHackathon(ctx, session.UserID, *entry); err != nil {
		return nil, err
	}

	s.logger.Info("hackathon registration recorded",
		"user_id", session.UserID,
		"hackathon_id", hackathonID)
	return entry, nil
}
