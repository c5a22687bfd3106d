package community

import (
	"testing"

	"github.com/agenthands/discourse/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(bloc []model.CommunityNode) []string {
	var out []string
	for _, n := range bloc {
		out = append(out, n.ID)
	}
	return out
}

func TestLPA_DisconnectedComponents(t *testing.T) {
	// [1-2-3-1] and [4-5-6-4], no link between them
	nodes := []model.CommunityNode{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
		{ID: "4"}, {ID: "5"}, {ID: "6"},
	}
	edges := []model.InteractionEdge{
		{SourceID: "1", TargetID: "2"}, {SourceID: "2", TargetID: "3"}, {SourceID: "3", TargetID: "1"},
		{SourceID: "4", TargetID: "5"}, {SourceID: "5", TargetID: "6"}, {SourceID: "6", TargetID: "4"},
	}

	blocs, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	require.Len(t, blocs, 2)
	assert.Equal(t, []string{"1", "2", "3"}, ids(blocs[0]))
	assert.Equal(t, []string{"4", "5", "6"}, ids(blocs[1]))
}

func TestLPA_BridgeNode(t *testing.T) {
	// two triangles joined by 3-4; intra-triangle ties outweigh the bridge
	nodes := []model.CommunityNode{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
		{ID: "4"}, {ID: "5"}, {ID: "6"},
	}
	edges := []model.InteractionEdge{
		{SourceID: "1", TargetID: "2"}, {SourceID: "2", TargetID: "3"}, {SourceID: "3", TargetID: "1"},
		{SourceID: "3", TargetID: "4"},
		{SourceID: "4", TargetID: "5"}, {SourceID: "5", TargetID: "6"}, {SourceID: "6", TargetID: "4"},
	}

	blocs, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)
	assert.Len(t, blocs, 2)

	assign := Assign(blocs)
	assert.Equal(t, assign["1"], assign["3"])
	assert.Equal(t, assign["4"], assign["6"])
	assert.NotEqual(t, assign["3"], assign["4"])
}

func TestLPA_LargeClique(t *testing.T) {
	nodes := []model.CommunityNode{
		{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"},
	}
	var edges []model.InteractionEdge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, model.InteractionEdge{
				SourceID: nodes[i].ID,
				TargetID: nodes[j].ID,
			})
		}
	}

	blocs, err := NewLabelPropagationDetector().Detect(nodes, edges)
	require.NoError(t, err)

	assert.Len(t, blocs, 1)
	assert.Len(t, blocs[0], 5)
}

func TestLPA_MinSizeAndEmpty(t *testing.T) {
	d := &LabelPropagationDetector{MaxIterations: 5, MinSize: 2}
	blocs, err := d.Detect([]model.CommunityNode{{ID: "1"}, {ID: "2"}, {ID: "3"}},
		[]model.InteractionEdge{{SourceID: "1", TargetID: "2"}})
	require.NoError(t, err)
	require.Len(t, blocs, 1)

	_, inBloc := Assign(blocs)["3"]
	assert.False(t, inBloc)

	blocs, err = d.Detect(nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, blocs)
}
