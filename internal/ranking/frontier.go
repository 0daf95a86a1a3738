package ranking

// Contenders returns the competitors on the (strength, age) Pareto frontier,
// in input order. A competitor is dominated if another one is at least as
// strong and at least as young, and strictly better on one of the two.
// O(n^2), fine for roster sizes.
func Contenders(competitors []Competitor) []Competitor {
	if len(competitors) <= 1 {
		return append([]Competitor(nil), competitors...)
	}

	var frontier []Competitor
	for i := range competitors {
		dominated := false
		for j := range competitors {
			if i == j {
				continue
			}
			if dominates(competitors[j], competitors[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, competitors[i])
		}
	}
	return frontier
}

// dominates returns true if a dominates b. Higher strength and lower age are
// better.
func dominates(a, b Competitor) bool {
	if a.Strength < b.Strength || a.Age > b.Age {
		return false
	}
	return isStronger(a, b) || isYounger(a, b)
}
