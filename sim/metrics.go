package sim

import "fmt"

// RallyMetrics aggregates outcomes across rallies for end-of-run reporting.
type RallyMetrics struct {
	RalliesPlayed   int   `json:"ralliesPlayed"`
	PointsHome      int   `json:"pointsHome"`
	PointsAway      int   `json:"pointsAway"`
	Sideouts        int   `json:"sideouts"`
	TotalRallyTicks int64 `json:"totalRallyTicks"`
}

// RecordPoint tallies one rally outcome.
func (m *RallyMetrics) RecordPoint(winner TeamSide, sideout bool, rallyTicks int64) {
	m.RalliesPlayed++
	switch winner {
	case SideHome:
		m.PointsHome++
	case SideAway:
		m.PointsAway++
	}
	if sideout {
		m.Sideouts++
	}
	m.TotalRallyTicks += rallyTicks
}

// Print writes the metrics summary to stdout.
func (m *RallyMetrics) Print() {
	fmt.Printf("Rallies played: %d\n", m.RalliesPlayed)
	fmt.Printf("Score: home %d, away %d\n", m.PointsHome, m.PointsAway)
	fmt.Printf("Sideouts: %d\n", m.Sideouts)
	if m.RalliesPlayed > 0 {
		fmt.Printf("Mean rally length: %.1f ticks\n",
			float64(m.TotalRallyTicks)/float64(m.RalliesPlayed))
	}
}
