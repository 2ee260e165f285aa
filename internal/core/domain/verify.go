package domain

// VerifyReport is the result of a chain integrity walk.
type VerifyReport struct {
	// Valid is true when every recomputed hash matched the stored hash
	// and all temporal pointers were mutually consistent.
	Valid bool `json:"valid"`

	// FirstBreak is the date of the first divergence, empty when Valid.
	FirstBreak string `json:"first_break,omitempty"`

	// Checked is the number of documents walked.
	Checked int `json:"checked"`
}
