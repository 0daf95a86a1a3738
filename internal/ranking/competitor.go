package ranking

import "fmt"

// Competitor is a ranked entity. Strength and Age drive the ranking; Name is
// only used to tell competitors apart.
type Competitor struct {
	Strength uint   `json:"strength"`
	Age      uint   `json:"age"`
	Name     string `json:"name"`
}

func (c Competitor) String() string {
	return fmt.Sprintf("%s (%d, %d)", c.Name, c.Strength, c.Age)
}

// IsZero reports whether c is the zero-valued competitor.
func (c Competitor) IsZero() bool {
	return c == Competitor{}
}

func isStronger(a, b Competitor) bool {
	return a.Strength > b.Strength
}

func isYounger(a, b Competitor) bool {
	return a.Age < b.Age
}

// isEqualRank ignores Name.
func isEqualRank(a, b Competitor) bool {
	return a.Strength == b.Strength && a.Age == b.Age
}
