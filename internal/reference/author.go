package reference

// Author is a paper author. Citation sources list the family name first.
type Author struct {
	Given  string `json:"given"`  // Given name; empty when only one name token was present
	Family string `json:"family"` // Family name, never empty for a parsed author
}

// FullName returns "Family Given", the order used in the source citations.
func (a Author) FullName() string {
	if a.Given == "" {
		return a.Family
	}
	return a.Family + " " + a.Given
}
