package hermes

const (
	SubjectAll         = "champion.>"
	SubjectRankRequest = "champion.rank.request"
	SubjectStats       = "champion.stats"

	StreamName   = "CHAMPION_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectRosterCreated(rosterID string) string { return "champion.roster." + rosterID + ".created" }
func SubjectRosterUpdated(rosterID string) string { return "champion.roster." + rosterID + ".updated" }
func SubjectRosterDeleted(rosterID string) string { return "champion.roster." + rosterID + ".deleted" }

// SubjectChampionChanged fires when a roster ranking crowns a different
// champion than its previous run.
func SubjectChampionChanged(rosterID string) string {
	return "champion.roster." + rosterID + ".champion_changed"
}

func SubjectRankingCompleted(runID string) string { return "champion.ranking." + runID + ".completed" }
