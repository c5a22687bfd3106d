package pages

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/agenthands/discourse/internal/ui"
)

// Registry holds the dashboard pages, addressable by slug and by path.
type Registry struct {
	pages  []*Page
	bySlug map[string]*Page
	byPath map[string]*Page
}

func NewRegistry() *Registry {
	return &Registry{
		bySlug: make(map[string]*Page),
		byPath: make(map[string]*Page),
	}
}

func (r *Registry) Register(p *Page) error {
	if err := p.validate(); err != nil {
		return err
	}
	if _, ok := r.bySlug[p.Slug]; ok {
		return fmt.Errorf("%w: slug %q", ErrDuplicatePage, p.Slug)
	}
	if _, ok := r.byPath[p.Path]; ok {
		return fmt.Errorf("%w: path %q", ErrDuplicatePage, p.Path)
	}
	r.pages = append(r.pages, p)
	r.bySlug[p.Slug] = p
	r.byPath[p.Path] = p
	return nil
}

// Pages returns the pages by Order, ties in registration order.
func (r *Registry) Pages() []*Page {
	out := slices.Clone(r.pages)
	slices.SortStableFunc(out, func(a, b *Page) int { return cmp.Compare(a.Order, b.Order) })
	return out
}

func (r *Registry) Lookup(slug string) (*Page, error) {
	p, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, slug)
	}
	return p, nil
}

func (r *Registry) ByPath(path string) (*Page, error) {
	p, ok := r.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: no page at %s", ErrUnknownPage, path)
	}
	return p, nil
}

// Nav lists every page for the navigation bar, marking the active one.
func (r *Registry) Nav(activeSlug string) []ui.NavLink {
	pages := r.Pages()
	out := make([]ui.NavLink, len(pages))
	for i, p := range pages {
		out[i] = ui.NavLink{Name: p.Name, Path: p.Path, Active: p.Slug == activeSlug}
	}
	return out
}
