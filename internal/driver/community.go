package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/logger"
)

// EdgeColumns are the columns of a community edge table, in the order the
// analysis pipeline exports them.
var EdgeColumns = []string{"SourceModularity", "TargetModularity", "agreement", "edge_bet", "originalUsernamePost"}

var ErrNoCommunities = errors.New("no community interactions stored")

// CommunityRepository reads and writes per-keyword community edge tables in
// the graph database.
type CommunityRepository struct {
	driver GraphDriver
}

func NewCommunityRepository(d GraphDriver) *CommunityRepository {
	return &CommunityRepository{driver: d}
}

func (r *CommunityRepository) Keywords(ctx context.Context) ([]string, error) {
	res, err := r.driver.ExecuteQuery(ctx, KeywordsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}

	keywords := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		kw, _ := rec.Get("keyword")
		if s, ok := kw.(string); ok && s != "" {
			keywords = append(keywords, s)
		}
	}
	return keywords, nil
}

// EdgeTable returns the interactions stored for keyword as a table with
// EdgeColumns.
func (r *CommunityRepository) EdgeTable(ctx context.Context, keyword string) (*data.Table, error) {
	res, err := r.driver.ExecuteQuery(ctx, CommunityEdgesQuery, map[string]any{"keyword": keyword})
	if err != nil {
		return nil, fmt.Errorf("failed to load edges for %q: %w", keyword, err)
	}

	rows := make([][]string, 0, len(res.Records))
	for _, rec := range res.Records {
		row, err := edgeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", keyword, err)
		}
		rows = append(rows, row)
	}
	return data.NewTable(EdgeColumns, rows)
}

func edgeRow(rec *neo4j.Record) ([]string, error) {
	keys := []string{"source", "target", "agreement", "edge_bet", "username"}
	row := make([]string, len(keys))
	for i, k := range keys {
		v, ok := rec.Get(k)
		if !ok {
			return nil, fmt.Errorf("record has no %q field", k)
		}
		row[i] = cell(v)
	}
	return row, nil
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// Communities loads the edge table of every stored keyword.
func (r *CommunityRepository) Communities(ctx context.Context) (*data.KeywordMap, error) {
	keywords, err := r.Keywords(ctx)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, ErrNoCommunities
	}

	tables := make(map[string]*data.Table, len(keywords))
	for _, kw := range keywords {
		t, err := r.EdgeTable(ctx, kw)
		if err != nil {
			return nil, err
		}
		tables[kw] = t
	}
	logger.Debug("Loaded communities from graph", "keywords", len(keywords))
	return data.NewKeywordMap(keywords, tables)
}

// SaveTable replaces the interactions stored for keyword with the rows of t.
func (r *CommunityRepository) SaveTable(ctx context.Context, keyword string, t *data.Table) error {
	src, err := t.Ints(EdgeColumns[0])
	if err != nil {
		return err
	}
	tgt, err := t.Ints(EdgeColumns[1])
	if err != nil {
		return err
	}
	agreement, err := t.Ints(EdgeColumns[2])
	if err != nil {
		return err
	}
	edgeBet, err := t.Floats(EdgeColumns[3])
	if err != nil {
		return err
	}
	users, err := t.Strings(EdgeColumns[4])
	if err != nil {
		return err
	}

	rows := make([]map[string]any, t.Len())
	for i := range rows {
		rows[i] = map[string]any{
			"row":       int64(i),
			"source":    src[i],
			"target":    tgt[i],
			"agreement": agreement[i],
			"edge_bet":  edgeBet[i],
			"username":  users[i],
		}
	}

	if _, err := r.driver.ExecuteQuery(ctx, DeleteKeywordQuery, map[string]any{"keyword": keyword}); err != nil {
		return fmt.Errorf("failed to clear keyword %q: %w", keyword, err)
	}
	if _, err := r.driver.ExecuteQuery(ctx, SaveInteractionsQuery, map[string]any{"keyword": keyword, "rows": rows}); err != nil {
		return fmt.Errorf("failed to save keyword %q: %w", keyword, err)
	}
	logger.Info("Saved community edges", "keyword", keyword, "rows", len(rows))
	return nil
}
