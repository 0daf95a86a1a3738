// Package ranking folds an ordered list of competitors into a champion and
// the set of competitors tied with it.
package ranking

import (
	"fmt"
	"strings"
)

// Result is the outcome of a ranking fold.
type Result struct {
	Champion      Competitor `json:"champion"`
	TiedChampions TieSet     `json:"tied_champions"`
}

// TiePolicy controls how an existing tie group reacts to a newcomer that is
// not strictly weaker than one of its members.
type TiePolicy string

const (
	// TiePolicyStrict resets the tie group for any such newcomer, including
	// one of identical rank. A three-way tie therefore collapses when its
	// third member arrives.
	TiePolicyStrict TiePolicy = "strict"
	// TiePolicyRetain lets a newcomer of identical rank to the champion join
	// the tie group instead of resetting it.
	TiePolicyRetain TiePolicy = "retain"
)

// ParseTiePolicy maps a config value to a TiePolicy. Empty means strict.
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch TiePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TiePolicyStrict:
		return TiePolicyStrict, nil
	case TiePolicyRetain:
		return TiePolicyRetain, nil
	default:
		return "", fmt.Errorf("unknown tie policy %q", s)
	}
}

// Rule names the fold rule applied to a single competitor.
type Rule string

const (
	RuleSeed                  Rule = "seed"
	RuleTieReset              Rule = "tie_reset"
	RuleEqualRank             Rule = "equal_rank"
	RuleNotStrongerNotYounger Rule = "not_stronger_not_younger"
	RuleNotStronger           Rule = "not_stronger"
	RuleHold                  Rule = "hold"
)

// Rules lists every rule in evaluation order.
var Rules = []Rule{RuleSeed, RuleTieReset, RuleEqualRank, RuleNotStrongerNotYounger, RuleNotStronger, RuleHold}

// Step records what the fold did with the competitor at Index.
type Step struct {
	Index      int        `json:"index"`
	Competitor Competitor `json:"competitor"`
	Rule       Rule       `json:"rule"`
	Champion   Competitor `json:"champion"`
	TieSize    int        `json:"tie_size"`
}

// Ranker runs the champion fold. The zero value uses TiePolicyStrict and is
// safe for concurrent use.
type Ranker struct {
	policy TiePolicy
}

// NewRanker creates a Ranker with the given tie policy.
func NewRanker(policy TiePolicy) *Ranker {
	return &Ranker{policy: policy}
}

// Policy returns the tie policy in effect.
func (r *Ranker) Policy() TiePolicy {
	if r == nil || r.policy == "" {
		return TiePolicyStrict
	}
	return r.policy
}

// Rank folds competitors left to right and returns the champion and its tie
// group. It never fails; an empty input yields the zero Result.
func (r *Ranker) Rank(competitors []Competitor) Result {
	return r.fold(competitors, nil)
}

// Explain is Rank plus the per-competitor trace of applied rules.
func (r *Ranker) Explain(competitors []Competitor) (Result, []Step) {
	steps := make([]Step, 0, len(competitors))
	res := r.fold(competitors, func(s Step) { steps = append(steps, s) })
	return res, steps
}

// Rank ranks competitors with the strict tie policy.
func Rank(competitors []Competitor) Result {
	var r Ranker
	return r.Rank(competitors)
}

func (r *Ranker) fold(competitors []Competitor, observe func(Step)) Result {
	var res Result
	policy := r.Policy()

	for i, p := range competitors {
		rule := r.step(&res, p, i == 0, policy)
		if observe != nil {
			observe(Step{
				Index:      i,
				Competitor: p,
				Rule:       rule,
				Champion:   res.Champion,
				TieSize:    res.TiedChampions.Len(),
			})
		}
	}
	return res
}

// step applies the first matching rule for p. Order matters: an equal-rank
// newcomer must reach RuleEqualRank before the replacement rules.
func (r *Ranker) step(res *Result, p Competitor, first bool, policy TiePolicy) Rule {
	// The zero champion is a placeholder, not a competitor; it must never be
	// recorded as tied.
	if first {
		res.Champion = p
		return RuleSeed
	}

	champion := res.Champion

	if res.TiedChampions.any(func(m Competitor) bool { return !isStronger(m, p) }) &&
		!(policy == TiePolicyRetain && isEqualRank(champion, p)) {
		res.Champion = p
		res.TiedChampions = TieSet{}
		return RuleTieReset
	}

	if isEqualRank(champion, p) {
		res.TiedChampions.Add(champion)
		res.TiedChampions.Add(p)
		return RuleEqualRank
	}

	if !isStronger(champion, p) && !isYounger(champion, p) {
		res.Champion = p
		return RuleNotStrongerNotYounger
	}

	if !isStronger(champion, p) {
		res.Champion = p
		return RuleNotStronger
	}

	return RuleHold
}
