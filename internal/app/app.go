// Package app wires configuration, storage and pages into a ready registry.
package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/discourse/internal/config"
	"github.com/agenthands/discourse/internal/core/charts"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/driver"
	"github.com/agenthands/discourse/internal/logger"
	"github.com/agenthands/discourse/internal/pages"
	"github.com/agenthands/discourse/internal/storage"
)

// Datasets are the artifacts every page reads, loaded once at startup.
type Datasets struct {
	MostActive    *data.Table
	MostMentioned *data.Table
	KeywordCounts *data.Table
	KeywordEdges  *data.KeywordMap
	Communities   *data.KeywordMap
}

// CommunitySource yields the per-keyword community edge tables.
type CommunitySource interface {
	Communities(ctx context.Context) (*data.KeywordMap, error)
}

type fileCommunities struct {
	loader *data.Loader
	prefix string
}

func (f fileCommunities) Communities(ctx context.Context) (*data.KeywordMap, error) {
	return f.loader.CommunityTables(ctx, f.prefix)
}

func NewSource(ctx context.Context, cfg *config.Config) (storage.Source, error) {
	switch cfg.Data.Source {
	case config.SourceS3:
		client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Source(client, cfg.S3.Bucket, cfg.S3.Prefix), nil
	default:
		return storage.NewLocalSource(cfg.Data.Dir), nil
	}
}

// Load reads every dataset concurrently. Any missing or malformed artifact
// fails the whole load.
func Load(ctx context.Context, loader *data.Loader, names config.DataConfig, communities CommunitySource) (*Datasets, error) {
	ds := &Datasets{}
	g, ctx := errgroup.WithContext(ctx)

	table := func(dst **data.Table, name string) {
		g.Go(func() error {
			t, err := loader.Table(ctx, name)
			if err != nil {
				return err
			}
			*dst = t
			return nil
		})
	}
	table(&ds.MostActive, names.MostActive)
	table(&ds.MostMentioned, names.MostMentioned)
	table(&ds.KeywordCounts, names.KeywordCounts)

	g.Go(func() error {
		km, err := loader.KeywordMap(ctx, names.KeywordEdges)
		if err != nil {
			return err
		}
		ds.KeywordEdges = km
		return nil
	})
	g.Go(func() error {
		km, err := communities.Communities(ctx)
		if err != nil {
			return fmt.Errorf("failed to load communities: %w", err)
		}
		ds.Communities = km
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("Datasets loaded",
		"keywords", ds.KeywordEdges.Len(),
		"community_keywords", ds.Communities.Len(),
	)
	return ds, nil
}

func PercentileOptions(c config.ChartsConfig) charts.PercentileOptions {
	opts := charts.DefaultPercentileOptions()
	opts.Low, opts.High = c.PercentileLow, c.PercentileHigh
	opts.Samples, opts.Skip = c.PercentileSamples, c.PercentileSkip
	return opts
}

func NetworkOptions(c config.ChartsConfig) charts.NetworkOptions {
	opts := charts.DefaultNetworkOptions()
	opts.Seed = c.LayoutSeed
	opts.Updates = c.LayoutUpdates
	return opts
}

// NewRegistry registers the four dashboard pages over ds.
func NewRegistry(ds *Datasets, c config.ChartsConfig) (*pages.Registry, error) {
	reg := pages.NewRegistry()
	for _, p := range []*pages.Page{
		pages.Home(),
		pages.Insights(ds.MostActive, ds.MostMentioned),
		pages.Polarization(ds.KeywordCounts, ds.KeywordEdges, PercentileOptions(c)),
		pages.Relationships(ds.Communities, NetworkOptions(c)),
	} {
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Bootstrap loads everything cfg points at and returns the page registry.
func Bootstrap(ctx context.Context, cfg *config.Config) (*pages.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	src, err := NewSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	loader := data.NewLoader(src)

	var communities CommunitySource = fileCommunities{loader: loader, prefix: cfg.Data.CommunityPrefix}
	if cfg.Data.CommunitySource == config.CommunityMemgraph {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph)
		if err != nil {
			return nil, err
		}
		// Tables are copied into memory, the connection is not needed after load.
		defer d.Close(context.WithoutCancel(ctx))
		communities = driver.NewCommunityRepository(d)
	}

	ds, err := Load(ctx, loader, cfg.Data, communities)
	if err != nil {
		return nil, err
	}
	return NewRegistry(ds, cfg.Charts)
}
