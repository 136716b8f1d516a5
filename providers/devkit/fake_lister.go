package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-lattice/core"
)

// FakePagedLister serves a fixed listing split into pages chained by
// synthetic tokens ("p2", "p3", ...). Errors can be injected per page.
type FakePagedLister struct {
	mu     sync.Mutex
	pages  map[core.EntityKind][]core.ListingPage
	errs   map[int]error
	tokens []string
}

func NewFakePagedLister() *FakePagedLister {
	return &FakePagedLister{
		pages: map[core.EntityKind][]core.ListingPage{},
		errs:  map[int]error{},
	}
}

// WithPages replaces the listing for kind. Each argument becomes one page.
func (l *FakePagedLister) WithPages(kind core.EntityKind, pages ...[]core.Entity) *FakePagedLister {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.ListingPage, 0, len(pages))
	for index, items := range pages {
		page := core.ListingPage{Items: append([]core.Entity(nil), items...)}
		if index < len(pages)-1 {
			page.NextToken = pageToken(index + 2)
		}
		out = append(out, page)
	}
	l.pages[kind] = out
	return l
}

// FailPage makes the fetch of the given 1-based page return err.
func (l *FakePagedLister) FailPage(page int, err error) *FakePagedLister {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs[page] = err
	return l
}

func (l *FakePagedLister) ListEntities(ctx context.Context, kind core.EntityKind, token string) (core.ListingPage, error) {
	if l == nil {
		return core.ListingPage{}, fmt.Errorf("devkit: fake lister is nil")
	}
	if err := ctx.Err(); err != nil {
		return core.ListingPage{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = append(l.tokens, token)

	index := 0
	if token != "" {
		if _, err := fmt.Sscanf(token, "p%d", &index); err != nil || index < 2 {
			return core.ListingPage{}, fmt.Errorf("devkit: unknown continuation token %q", token)
		}
		index--
	}
	if err := l.errs[index+1]; err != nil {
		return core.ListingPage{}, err
	}
	pages := l.pages[kind]
	if index >= len(pages) {
		if index == 0 {
			return core.ListingPage{}, nil
		}
		return core.ListingPage{}, fmt.Errorf("devkit: no page for token %q", token)
	}
	page := pages[index]
	return core.ListingPage{
		Items:     append([]core.Entity(nil), page.Items...),
		NextToken: page.NextToken,
	}, nil
}

// Calls returns the tokens received so far, in order.
func (l *FakePagedLister) Calls() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.tokens...)
}

func pageToken(page int) string {
	return fmt.Sprintf("p%d", page)
}

var _ core.EntityLister = (*FakePagedLister)(nil)
