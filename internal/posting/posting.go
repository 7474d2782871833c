package posting

// Posting is a structured job posting. The ID is derived from the source
// filename and stays stable across runs. Instances are produced by the
// extraction layer and treated as read-only by the scoring engine.
type Posting struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	Contract         string   `json:"contract"`
	Responsibilities string   `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	NiceToHave       []string `json:"nice_to_have"`
	Seniority        string   `json:"seniority"`
	Raw              string   `json:"raw_text"`
}
