package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/discourse/internal/config"
	"github.com/agenthands/discourse/internal/data"
)

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"most_actimel.csv":    "most_active_users,value\nalice,10\nbob,7\n",
		"most_mentos.csv":     "most_mentioned_users,value\ncarol,30\n",
		"barplottolo.csv":     "top_keywords,top_occurrences\nvote,120\nfraud,87\n",
		"community_vote.csv":  "SourceModularity,TargetModularity,agreement,edge_bet,originalUsernamePost\n1,2,1,0.5,alice\n2,1,-1,0.2,bob\n",
		"community_fraud.csv": "SourceModularity,TargetModularity,agreement,edge_bet,originalUsernamePost\n3,4,-1,0.7,dave\n",
		"accademia_della_kruskal.json": `{"vote": [{"agreement": 1, "edge_bet": 0.1}, {"agreement": -1, "edge_bet": 0.3}],
			"fraud": {"agreement": [1, -1], "edge_bet": [0.2, 0.4]}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestBootstrap(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = writeFixtures(t)

	reg, err := Bootstrap(context.Background(), cfg)
	require.NoError(t, err)

	var slugs []string
	for _, p := range reg.Pages() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"home", "insights", "polarization", "relationships"}, slugs)

	rel, err := reg.Lookup("relationships")
	require.NoError(t, err)
	assert.Equal(t, "fraud", rel.Defaults()["keyword-dropdown"], "community keywords are sorted")
}

func TestBootstrap_MissingArtifact(t *testing.T) {
	dir := writeFixtures(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "barplottolo.csv")))

	cfg := config.Default()
	cfg.Data.Dir = dir

	_, err := Bootstrap(context.Background(), cfg)
	require.ErrorIs(t, err, data.ErrNotFound)
	assert.Contains(t, err.Error(), "barplottolo.csv")
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Source = "ftp"

	_, err := Bootstrap(context.Background(), cfg)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestOptionsFromConfig(t *testing.T) {
	c := config.Default().Charts
	c.PercentileSkip = 400
	c.LayoutSeed = 7

	p := PercentileOptions(c)
	assert.Equal(t, 400, p.Skip)
	assert.Equal(t, "edge_bet", p.ValueColumn)
	assert.Len(t, p.Points(), 100)

	n := NetworkOptions(c)
	assert.Equal(t, uint64(7), n.Seed)
	assert.Equal(t, "SourceModularity", n.SourceColumn)
}
