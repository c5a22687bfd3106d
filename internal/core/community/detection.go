package community

import (
	"github.com/agenthands/discourse/internal/core/model"
)

// Detector groups communities of a keyword network into blocs.
type Detector interface {
	Detect(nodes []model.CommunityNode, edges []model.InteractionEdge) ([][]model.CommunityNode, error)
}

// ComponentDetector returns the weakly connected components of the network.
type ComponentDetector struct {
	MinSize int
}

func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{MinSize: 1}
}

func (d *ComponentDetector) Detect(nodes []model.CommunityNode, edges []model.InteractionEdge) ([][]model.CommunityNode, error) {
	nodeMap := make(map[string]model.CommunityNode)
	adj := make(map[string][]string)

	for _, n := range nodes {
		nodeMap[n.ID] = n
	}

	for _, e := range edges {
		// direction is ignored; edges to unknown nodes are skipped
		if _, ok := nodeMap[e.SourceID]; !ok {
			continue
		}
		if _, ok := nodeMap[e.TargetID]; !ok {
			continue
		}

		adj[e.SourceID] = append(adj[e.SourceID], e.TargetID)
		adj[e.TargetID] = append(adj[e.TargetID], e.SourceID)
	}

	visited := make(map[string]bool)
	var components [][]model.CommunityNode

	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		var ids []string
		d.dfs(n.ID, adj, visited, &ids)
		if len(ids) < d.MinSize {
			continue
		}
		component := make([]model.CommunityNode, 0, len(ids))
		for _, id := range ids {
			component = append(component, nodeMap[id])
		}
		components = append(components, component)
	}

	return components, nil
}

func (d *ComponentDetector) dfs(u string, adj map[string][]string, visited map[string]bool, component *[]string) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			d.dfs(v, adj, visited, component)
		}
	}
}
