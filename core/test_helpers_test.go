package core

import (
	"context"
	"fmt"
	"sync"
)

type listCall struct {
	kind  EntityKind
	token string
}

// scriptedLister serves pages keyed by the continuation token that asks for
// them. The first page is keyed by "".
type scriptedLister struct {
	mu     sync.Mutex
	pages  map[string]ListingPage
	errs   map[string]error
	calls  []listCall
	before func(token string)
}

func newScriptedLister(pages ...ListingPage) *scriptedLister {
	lister := &scriptedLister{pages: map[string]ListingPage{}, errs: map[string]error{}}
	token := ""
	for _, page := range pages {
		lister.pages[token] = page
		token = page.NextToken
	}
	return lister
}

func (l *scriptedLister) failOn(token string, err error) *scriptedLister {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs[token] = err
	return l
}

func (l *scriptedLister) ListEntities(_ context.Context, kind EntityKind, token string) (ListingPage, error) {
	l.mu.Lock()
	l.calls = append(l.calls, listCall{kind: kind, token: token})
	before := l.before
	err := l.errs[token]
	page, ok := l.pages[token]
	l.mu.Unlock()

	if before != nil {
		before(token)
	}
	if err != nil {
		return ListingPage{}, err
	}
	if !ok {
		return ListingPage{}, fmt.Errorf("scripted lister: no page for token %q", token)
	}
	return page, nil
}

func (l *scriptedLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func (l *scriptedLister) tokens() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.calls))
	for _, call := range l.calls {
		out = append(out, call.token)
	}
	return out
}

type stubTransport struct {
	mu       sync.Mutex
	requests []TransportRequest
	response TransportResponse
	err      error
}

func (*stubTransport) Kind() string { return "stub" }

func (s *stubTransport) Do(_ context.Context, req TransportRequest) (TransportResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return TransportResponse{}, s.err
	}
	return s.response, nil
}

func (s *stubTransport) last() (TransportRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return TransportRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

func entities(names ...string) []Entity {
	out := make([]Entity, 0, len(names))
	for _, name := range names {
		out = append(out, Entity{Name: name, ID: "id-" + name, ARN: "arn:aws:vpc-lattice:us-east-1:111122223333:" + name})
	}
	return out
}
