package ranking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContenders(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Contenders(nil))
	})

	t.Run("single", func(t *testing.T) {
		in := []Competitor{c(1, 1, "solo")}
		assert.Equal(t, in, Contenders(in))
	})

	t.Run("strong and young frontier", func(t *testing.T) {
		got := Contenders(highestStrengthList())
		// Sherlock is strongest, Francis and Moriarty are youngest; nobody
		// else is both stronger and younger than them.
		assert.Equal(t, []Competitor{
			c(3100, 33, "Sherlock"),
			c(3000, 32, "Magnus"),
			c(2999, 24, "Francis"),
			c(2999, 24, "Moriarty"),
		}, got)
	})

	t.Run("equal rank never dominates", func(t *testing.T) {
		got := Contenders([]Competitor{c(3000, 30, "Kareem"), c(3000, 30, "Lebron"), c(2900, 30, "Boo")})
		assert.Equal(t, []Competitor{c(3000, 30, "Kareem"), c(3000, 30, "Lebron")}, got)
	})

	t.Run("does not alias input", func(t *testing.T) {
		in := []Competitor{c(1, 1, "solo")}
		out := Contenders(in)
		out[0].Name = "changed"
		assert.Equal(t, "solo", in[0].Name)
	})
}

func TestTieSetMembersSorted(t *testing.T) {
	s := NewTieSet(
		c(3000, 30, "Lebron"),
		c(3000, 30, "Félix"),
		c(3000, 30, "Kareem"),
		c(3000, 30, "Felix"),
		c(3000, 30, "Kareem"),
	)
	require.Equal(t, 4, s.Len())

	names := make([]string, 0, s.Len())
	for _, m := range s.Members() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Felix", "Félix", "Kareem", "Lebron"}, names)
}

func TestTieSetMembersStableForEquivalentNames(t *testing.T) {
	precomposed := c(1, 1, "\u00e9")
	decomposed := c(1, 1, "e\u0301")

	for i := 0; i < 100; i++ {
		members := NewTieSet(precomposed, decomposed).Members()
		require.Len(t, members, 2)
		assert.Equal(t, []Competitor{decomposed, precomposed}, members, "iteration %d", i)
	}
}

func TestTieSetJSON(t *testing.T) {
	var empty TieSet
	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	res := Rank(twoWayTieList())
	data, err = json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"champion": {"strength": 3000, "age": 30, "name": "Kareem"},
		"tied_champions": [
			{"strength": 3000, "age": 30, "name": "Kareem"},
			{"strength": 3000, "age": 30, "name": "Lebron"}
		]
	}`, string(data))

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, res.Champion, decoded.Champion)
	assert.ElementsMatch(t, res.TiedChampions.Members(), decoded.TiedChampions.Members())
}
