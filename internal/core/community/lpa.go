package community

import (
	"sort"

	"github.com/agenthands/discourse/internal/core/model"
)

// LabelPropagationDetector implements community detection using Label
// Propagation (LPA) over an undirected view of the network, where repeated
// edges between the same pair count as a stronger tie.
type LabelPropagationDetector struct {
	MaxIterations int
	MinSize       int
}

func NewLabelPropagationDetector() *LabelPropagationDetector {
	return &LabelPropagationDetector{
		MaxIterations: 20,
		MinSize:       1,
	}
}

// Detect returns blocs ordered by the position of their first member in nodes,
// members in input order.
func (d *LabelPropagationDetector) Detect(nodes []model.CommunityNode, edges []model.InteractionEdge) ([][]model.CommunityNode, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	adj := make(map[string]map[string]int) // node -> neighbor -> weight
	position := make(map[string]int)

	for i, n := range nodes {
		position[n.ID] = i
		adj[n.ID] = make(map[string]int)
	}

	for _, e := range edges {
		if _, ok := position[e.SourceID]; !ok {
			continue
		}
		if _, ok := position[e.TargetID]; !ok {
			continue
		}
		if e.SourceID == e.TargetID {
			continue
		}

		adj[e.SourceID][e.TargetID]++
		adj[e.TargetID][e.SourceID]++
	}

	// every node starts in its own bloc
	labels := make(map[string]string, len(nodes))
	for _, n := range nodes {
		labels[n.ID] = n.ID
	}

	for iter := 0; iter < d.MaxIterations; iter++ {
		changeCount := 0

		for _, n := range nodes {
			u := n.ID
			neighbors := adj[u]
			if len(neighbors) == 0 {
				continue
			}

			labelCounts := make(map[string]int)
			maxCount := 0
			for v, weight := range neighbors {
				label := labels[v]
				labelCounts[label] += weight
				if labelCounts[label] > maxCount {
					maxCount = labelCounts[label]
				}
			}

			var candidates []string
			for label, count := range labelCounts {
				if count == maxCount {
					candidates = append(candidates, label)
				}
			}

			// keep the current label on a tie, otherwise the largest for stability
			sort.Strings(candidates)
			bestLabel := candidates[len(candidates)-1]
			if labelCounts[labels[u]] == maxCount {
				bestLabel = labels[u]
			}

			if labels[u] != bestLabel {
				labels[u] = bestLabel
				changeCount++
			}
		}

		if changeCount == 0 {
			break
		}
	}

	clusters := make(map[string][]model.CommunityNode)
	var order []string
	for _, n := range nodes {
		label := labels[n.ID]
		if _, ok := clusters[label]; !ok {
			order = append(order, label)
		}
		clusters[label] = append(clusters[label], n)
	}

	var blocs [][]model.CommunityNode
	for _, label := range order {
		if len(clusters[label]) >= d.MinSize {
			blocs = append(blocs, clusters[label])
		}
	}

	return blocs, nil
}

// Assign maps every node ID to the index of its bloc. Nodes dropped for being
// below the minimum size are absent.
func Assign(blocs [][]model.CommunityNode) map[string]int {
	out := make(map[string]int)
	for i, bloc := range blocs {
		for _, n := range bloc {
			out[n.ID] = i
		}
	}
	return out
}
