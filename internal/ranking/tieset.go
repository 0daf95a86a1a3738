package ranking

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TieSet holds competitors recorded as co-equal with the champion, keyed on
// full identity (strength, age, name).
type TieSet struct {
	members map[Competitor]struct{}
}

// NewTieSet returns a set holding the given competitors.
func NewTieSet(cs ...Competitor) TieSet {
	var s TieSet
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

// Add inserts c. Adding a competitor already present is a no-op.
func (s *TieSet) Add(c Competitor) {
	if s.members == nil {
		s.members = make(map[Competitor]struct{})
	}
	s.members[c] = struct{}{}
}

func (s TieSet) Contains(c Competitor) bool {
	_, ok := s.members[c]
	return ok
}

func (s TieSet) Len() int { return len(s.members) }

func (s TieSet) IsEmpty() bool { return len(s.members) == 0 }

// any reports whether fn holds for at least one member.
func (s TieSet) any(fn func(Competitor) bool) bool {
	for m := range s.members {
		if fn(m) {
			return true
		}
	}
	return false
}

// Members returns the competitors sorted by strength (desc), age (asc) and
// then name. Callers get a fresh slice.
func (s TieSet) Members() []Competitor {
	out := make([]Competitor, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	SortCompetitors(out)
	return out
}

func (s TieSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Members())
}

func (s *TieSet) UnmarshalJSON(data []byte) error {
	var cs []Competitor
	if err := json.Unmarshal(data, &cs); err != nil {
		return err
	}
	*s = NewTieSet(cs...)
	return nil
}

// SortCompetitors orders cs by strength (desc), age (asc) and name using
// locale-independent Unicode collation, so "Félix" sorts next to "Felix".
func SortCompetitors(cs []Competitor) {
	col := collate.New(language.Und)
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Strength != b.Strength {
			return a.Strength > b.Strength
		}
		if a.Age != b.Age {
			return a.Age < b.Age
		}
		if r := col.CompareString(a.Name, b.Name); r != 0 {
			return r < 0
		}
		// Canonically equivalent names collate equal; fall back to bytes.
		return a.Name < b.Name
	})
}
