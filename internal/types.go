package internal

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the two conversational roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// --- Chat ---

type ChatRequest struct {
	Message any       `json:"message"`
	History []Message `json:"history"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Source   string `json:"source,omitempty"`
}

type ChatStatus struct {
	Gemini      bool     `json:"gemini"`
	HuggingFace bool     `json:"huggingface"`
	Models      []string `json:"models"`
}

// --- Profiles ---

type UserProfile struct {
	UserID string `json:"userId"`

	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`

	ReservationCategory string `json:"reservationCategory"`
	Gender              string `json:"gender"`
	Domicile            string `json:"domicile"`

	PreferredCollegeType []string `json:"preferredCollegeType"`
	LocationPreference   []string `json:"locationPreference"`
	MaxBudget            *float64 `json:"maxBudget,omitempty"`
	MinBudget            *float64 `json:"minBudget,omitempty"`

	HostelRequired              bool `json:"hostelRequired"`
	PreferSmallCampus           bool `json:"preferSmallCampus"`
	PrioritizeGovernmentCollege bool `json:"prioritizeGovernmentCollege"`

	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	IsProfileComplete bool      `json:"isProfileComplete"`
}

// ProfileUpdate carries a partial profile; nil fields are left untouched.
type ProfileUpdate struct {
	Name                        *string   `json:"name"`
	Email                       *string   `json:"email"`
	Phone                       *string   `json:"phone"`
	ReservationCategory         *string   `json:"reservationCategory"`
	Gender                      *string   `json:"gender"`
	Domicile                    *string   `json:"domicile"`
	PreferredCollegeType        *[]string `json:"preferredCollegeType"`
	LocationPreference          *[]string `json:"locationPreference"`
	MaxBudget                   *float64  `json:"maxBudget"`
	MinBudget                   *float64  `json:"minBudget"`
	HostelRequired              *bool     `json:"hostelRequired"`
	PreferSmallCampus           *bool     `json:"preferSmallCampus"`
	PrioritizeGovernmentCollege *bool     `json:"prioritizeGovernmentCollege"`
}

// ComparisonFactors is the personalization block understood by the compare backend.
type ComparisonFactors struct {
	Category                    string   `json:"category"`
	Gender                      string   `json:"gender"`
	Domicile                    string   `json:"domicile"`
	MaxBudget                   *float64 `json:"maxBudget,omitempty"`
	HostelRequired              bool     `json:"hostelRequired"`
	PreferredCollegeType        []string `json:"preferredCollegeType"`
	LocationPreference          []string `json:"locationPreference"`
	PreferSmallCampus           bool     `json:"preferSmallCampus"`
	PrioritizeGovernmentCollege bool     `json:"prioritizeGovernmentCollege"`
}

// --- College backend ---

type PredictRequest struct {
	Rank     int    `json:"rank"`
	Category string `json:"category"`
	Gender   string `json:"gender"`
	State    string `json:"state,omitempty"`
	TopN     int    `json:"top_n"`
}

type CompareRequest struct {
	Colleges        []string           `json:"colleges"`
	Personalization *ComparisonFactors `json:"personalization,omitempty"`
	UserID          string             `json:"userId,omitempty"`
}

type CollegeSuggestion struct {
	Name string   `json:"name"`
	City string   `json:"city"`
	Type string   `json:"type"`
	Fees *float64 `json:"fees"`
}

type AutocompleteResponse struct {
	Success     bool                `json:"success"`
	Suggestions []CollegeSuggestion `json:"suggestions"`
	Count       int                 `json:"count"`
}
