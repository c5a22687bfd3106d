package charts

import (
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/agenthands/discourse/internal/core/community"
	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/data"
)

const (
	minNodeSize  = 6
	nodeSizeGain = 10
	pageRankDamp = 0.85
	pageRankTol  = 1e-6
)

var polarityColors = map[int64]string{
	model.Agree:    "green",
	model.Disagree: "red",
}

type NetworkOptions struct {
	Seed    uint64
	Updates int

	SourceColumn   string
	TargetColumn   string
	PolarityColumn string
	WeightColumn   string
	UserColumn     string
}

func DefaultNetworkOptions() NetworkOptions {
	return NetworkOptions{
		Seed:           42,
		Updates:        50,
		SourceColumn:   "SourceModularity",
		TargetColumn:   "TargetModularity",
		PolarityColumn: "agreement",
		WeightColumn:   "edge_bet",
		UserColumn:     "originalUsernamePost",
	}
}

// CommunityGraph is the drawn part of a keyword's interaction table: the
// communities that interact with another community and the edges between them.
type CommunityGraph struct {
	Nodes      []model.CommunityNode
	Edges      []model.InteractionEdge
	Positions  map[string]r2.Vec
	// Components is the number of disconnected parts of the graph.
	Components int
	Blocs      int
}

type interactionRow struct {
	src, tgt int64
	polarity int64
	weight   float64
}

// BuildCommunityGraph drops interactions inside a single community, merges
// duplicate (source, target) pairs keeping the last row, then lays the graph
// out and scores it.
func BuildCommunityGraph(t *data.Table, opts NetworkOptions) (*CommunityGraph, error) {
	src, err := t.Ints(opts.SourceColumn)
	if err != nil {
		return nil, err
	}
	tgt, err := t.Ints(opts.TargetColumn)
	if err != nil {
		return nil, err
	}
	polarity, err := t.Ints(opts.PolarityColumn)
	if err != nil {
		return nil, err
	}
	weight, err := t.Floats(opts.WeightColumn)
	if err != nil {
		return nil, err
	}
	users, err := t.Strings(opts.UserColumn)
	if err != nil {
		return nil, err
	}

	var rows []interactionRow
	for i := range src {
		if src[i] == tgt[i] {
			continue
		}
		rows = append(rows, interactionRow{src[i], tgt[i], polarity[i], weight[i]})
	}
	if len(rows) == 0 {
		return nil, ErrNoCrossEdges
	}
	// Pairs are visited in ascending (source, target) order, rows within a pair
	// in table order.
	slices.SortStableFunc(rows, func(a, b interactionRow) int {
		return cmp.Or(cmp.Compare(a.src, b.src), cmp.Compare(a.tgt, b.tgt))
	})

	g := &CommunityGraph{Positions: make(map[string]r2.Vec)}
	nodeIndex := make(map[string]int)
	addNode := func(class int64) {
		id := strconv.FormatInt(class, 10)
		if _, ok := nodeIndex[id]; ok {
			return
		}
		nodeIndex[id] = len(g.Nodes)
		g.Nodes = append(g.Nodes, model.CommunityNode{ID: id, Modularity: class})
	}

	type pair struct{ src, tgt int64 }
	edgeIndex := make(map[pair]int)
	for _, r := range rows {
		addNode(r.src)
		addNode(r.tgt)
		e := model.InteractionEdge{
			SourceID:  strconv.FormatInt(r.src, 10),
			TargetID:  strconv.FormatInt(r.tgt, 10),
			Agreement: r.polarity,
			EdgeBet:   r.weight,
		}
		if i, ok := edgeIndex[pair{r.src, r.tgt}]; ok {
			g.Edges[i] = e
			continue
		}
		edgeIndex[pair{r.src, r.tgt}] = len(g.Edges)
		g.Edges = append(g.Edges, e)
	}

	for _, e := range g.Edges {
		if _, ok := polarityColors[e.Agreement]; !ok {
			return nil, fmt.Errorf("%w: %d on edge %s -> %s", ErrUnknownPolarity, e.Agreement, e.SourceID, e.TargetID)
		}
	}

	for i := range g.Nodes {
		g.Nodes[i].TopUser = mostActiveUser(g.Nodes[i].Modularity, src, tgt, users)
	}
	for _, e := range g.Edges {
		g.Nodes[nodeIndex[e.SourceID]].Weight += e.EdgeBet
		g.Nodes[nodeIndex[e.TargetID]].Weight += e.EdgeBet
	}

	g.score(nodeIndex)
	g.layout(nodeIndex, opts)

	blocs, err := community.NewLabelPropagationDetector().Detect(g.Nodes, g.Edges)
	if err != nil {
		return nil, err
	}
	g.Blocs = len(blocs)
	for id, b := range community.Assign(blocs) {
		g.Nodes[nodeIndex[id]].Bloc = b
	}

	components, err := community.NewComponentDetector().Detect(g.Nodes, g.Edges)
	if err != nil {
		return nil, err
	}
	g.Components = len(components)

	return g, nil
}

// mostActiveUser returns the user with the most posts touching class; ties go
// to the user seen first.
func mostActiveUser(class int64, src, tgt []int64, users []string) string {
	counts := make(map[string]int)
	var order []string
	for i := range users {
		if src[i] != class && tgt[i] != class {
			continue
		}
		if _, ok := counts[users[i]]; !ok {
			order = append(order, users[i])
		}
		counts[users[i]]++
	}
	best, bestN := "", 0
	for _, u := range order {
		if counts[u] > bestN {
			best, bestN = u, counts[u]
		}
	}
	return best
}

func (g *CommunityGraph) score(index map[string]int) {
	dg := simple.NewDirectedGraph()
	for i := range g.Nodes {
		dg.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		dg.SetEdge(simple.Edge{
			F: simple.Node(index[e.SourceID]),
			T: simple.Node(index[e.TargetID]),
		})
	}
	ranks := network.PageRank(orderedDirected{dg}, pageRankDamp, pageRankTol)
	for i := range g.Nodes {
		g.Nodes[i].PageRank = ranks[int64(i)]
	}
}

// layout places nodes with a seeded force-directed optimizer and rescales the
// result so the largest coordinate magnitude is 1.
func (g *CommunityGraph) layout(index map[string]int, opts NetworkOptions) {
	ug := simple.NewUndirectedGraph()
	for i := range g.Nodes {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		u, v := int64(index[e.SourceID]), int64(index[e.TargetID])
		if ug.HasEdgeBetween(u, v) {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(u), T: simple.Node(v)})
	}

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   opts.Updates,
		Theta:     0.2,
		Src:       rand.NewPCG(opts.Seed, opts.Seed),
	}
	o := layout.NewOptimizerR2(orderedUndirected{ug}, eades.Update)
	for o.Update() {
	}

	coords := make([]r2.Vec, len(g.Nodes))
	var mean r2.Vec
	for i := range g.Nodes {
		coords[i] = o.Coord2(int64(i))
		mean = r2.Add(mean, coords[i])
	}
	mean = r2.Scale(1/float64(len(coords)), mean)

	lim := 0.0
	for i := range coords {
		coords[i] = r2.Sub(coords[i], mean)
		lim = math.Max(lim, math.Max(math.Abs(coords[i].X), math.Abs(coords[i].Y)))
	}
	for i, n := range g.Nodes {
		if lim > 0 {
			coords[i] = r2.Scale(1/lim, coords[i])
		}
		g.Positions[n.ID] = coords[i]
	}
}

func nodeSize(weight float64) float64 {
	return math.Max(weight*nodeSizeGain, minNodeSize)
}

// Network draws a keyword's community interaction graph: one line trace per
// edge coloured by polarity, then a single trace holding every node.
func Network(keyword string, t *data.Table, opts NetworkOptions) (*model.Figure, error) {
	g, err := BuildCommunityGraph(t, opts)
	if err != nil {
		return nil, fmt.Errorf("network for %q: %w", keyword, err)
	}

	fig := &model.Figure{}
	for _, e := range g.Edges {
		p0, p1 := g.Positions[e.SourceID], g.Positions[e.TargetID]
		fig.Data = append(fig.Data, model.Trace{
			Type:      "scatter",
			Mode:      "lines",
			X:         []any{p0.X, p1.X, nil},
			Y:         []any{p0.Y, p1.Y, nil},
			Line:      &model.Line{Width: 0.5, Color: polarityColors[e.Agreement]},
			HoverInfo: "none",
		})
	}

	n := len(g.Nodes)
	node := model.Trace{
		Type:      "scatter",
		Mode:      "markers+text",
		HoverInfo: "text",
		X:         make([]any, n),
		Y:         make([]any, n),
		Text:      make([]string, n),
		HoverText: make([]string, n),
	}
	colors := make([]string, n)
	sizes := make([]float64, n)
	for i, c := range g.Nodes {
		pos := g.Positions[c.ID]
		node.X[i], node.Y[i] = pos.X, pos.Y
		node.Text[i] = c.TopUser
		node.HoverText[i] = fmt.Sprintf("%s<br>community %d<br>PageRank %.3f<br>bloc %d",
			c.TopUser, c.Modularity, c.PageRank, c.Bloc)
		colors[i] = Viridis(float64(i) / float64(n))
		sizes[i] = nodeSize(c.Weight)
	}
	node.Marker = &model.Marker{Color: colors, Size: sizes, Line: &model.Line{Width: 2}}
	fig.Data = append(fig.Data, node)

	hidden := func() *model.Axis {
		return &model.Axis{ShowGrid: model.Bool(false), ZeroLine: model.Bool(false), ShowTickLabels: model.Bool(false)}
	}
	fig.Layout = model.Layout{
		Title: model.NewTitle(fmt.Sprintf(`Network Graph for Keyword "%s"<br><sub>%d communities in %d components, %d blocs</sub>`,
			keyword, n, g.Components, g.Blocs)),
		ShowLegend: model.Bool(false),
		HoverMode:  "closest",
		Margin:     &model.Margin{B: 20, L: 5, R: 5, T: 40},
		XAxis:      hidden(),
		YAxis:      hidden(),
	}
	return fig, nil
}
