package readability

import (
	"golang.org/x/net/html"
)

// nodeScore is the per-node record of a scoring pass. A node is a candidate
// exactly when it has one.
type nodeScore struct {
	contentScore float64
}

// resetPassState drops the side tables of the previous pass.
func (r *Readability) resetPassState() {
	r.scores = make(map[*html.Node]*nodeScore)
	r.dataTables = make(map[*html.Node]bool)
}

// initializeNode registers n as a candidate seeded from its tag and class weight.
func (r *Readability) initializeNode(n *html.Node, flags Flags) *nodeScore {
	score := &nodeScore{contentScore: tagSeed(n) + float64(getClassWeight(n, flags))}
	r.scores[n] = score
	return score
}

// scoreOf returns n's content score, zero for non-candidates.
func (r *Readability) scoreOf(n *html.Node) float64 {
	if score, ok := r.scores[n]; ok {
		return score.contentScore
	}
	return 0
}

func (r *Readability) isCandidate(n *html.Node) bool {
	_, ok := r.scores[n]
	return ok
}

func (r *Readability) isDataTable(n *html.Node) bool {
	return r.dataTables[n]
}
