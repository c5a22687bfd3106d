package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/agenthands/discourse/internal/logger"
	"github.com/agenthands/discourse/internal/storage"
)

// Loader reads artifacts from a storage.Source and keeps each one in memory
// after the first successful load.
type Loader struct {
	src storage.Source

	cache   map[string]any
	cacheMu sync.RWMutex
	group   singleflight.Group
}

func NewLoader(src storage.Source) *Loader {
	return &Loader{
		src:   src,
		cache: make(map[string]any),
	}
}

func (l *Loader) Table(ctx context.Context, name string) (*Table, error) {
	v, err := l.load("table:"+name, func() (any, error) {
		b, err := l.read(ctx, name)
		if err != nil {
			return nil, err
		}
		return ParseCSV(name, bytes.NewReader(b))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

func (l *Loader) KeywordMap(ctx context.Context, name string) (*KeywordMap, error) {
	v, err := l.load("keywords:"+name, func() (any, error) {
		b, err := l.read(ctx, name)
		if err != nil {
			return nil, err
		}
		return ParseKeywordMap(name, b)
	})
	if err != nil {
		return nil, err
	}
	return v.(*KeywordMap), nil
}

// CommunityTables loads every "<prefix><keyword>.csv" artifact and returns
// them keyed by keyword, sorted.
func (l *Loader) CommunityTables(ctx context.Context, prefix string) (*KeywordMap, error) {
	names, err := l.src.List(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var keys []string
	files := make(map[string]string)
	for _, n := range names {
		if !strings.HasPrefix(n, prefix) || !strings.HasSuffix(n, ".csv") {
			continue
		}
		kw := strings.TrimSuffix(strings.TrimPrefix(n, prefix), ".csv")
		if kw == "" {
			continue
		}
		keys = append(keys, kw)
		files[kw] = n
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no %s*.csv files", ErrNotFound, prefix)
	}
	sort.Strings(keys)

	tables := make([]*Table, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, kw := range keys {
		g.Go(func() error {
			t, err := l.Table(gctx, files[kw])
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byKeyword := make(map[string]*Table, len(keys))
	for i, kw := range keys {
		byKeyword[kw] = tables[i]
	}
	logger.Debug("Loaded community tables", "count", len(keys), "prefix", prefix)
	return NewKeywordMap(keys, byKeyword)
}

func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	b, err := l.src.ReadFile(ctx, name)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return b, nil
}

func (l *Loader) load(key string, fn func() (any, error)) (any, error) {
	l.cacheMu.RLock()
	if v, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return v, nil
	}
	l.cacheMu.RUnlock()

	v, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if v, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return v, nil
		}
		l.cacheMu.RUnlock()

		v, err := fn()
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = v
		l.cacheMu.Unlock()
		return v, nil
	})
	return v, err
}

func mapNotFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
