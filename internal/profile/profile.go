package profile

// Contact holds the candidate's contact information.
type Contact struct {
	Email    string `json:"email"`
	Location string `json:"location"`
	Phone    string `json:"phone,omitempty"`
}

// Profile is a structured candidate profile. Instances are produced by the
// extraction layer and treated as read-only by the scoring engine.
type Profile struct {
	Name              string   `json:"name"`
	Contact           Contact  `json:"contact"`
	YearsOfExperience int      `json:"years_of_experience"`
	Seniority         string   `json:"seniority"`
	Skills            []string `json:"skills"`
	Domains           []string `json:"domains"`
	Languages         []string `json:"languages"`
	Education         []string `json:"education"`
	Projects          []string `json:"projects"`
	PreferredLocation string   `json:"preferred_location"`
	OtherNotes        string   `json:"other_notes,omitempty"`
}
