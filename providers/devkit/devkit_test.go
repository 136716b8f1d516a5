package devkit

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-lattice/core"
)

func TestFakeTransportAdapter_ScriptsAndCapturesRequests(t *testing.T) {
	adapter := NewFakeTransportAdapter("rest",
		TransportScript{Response: core.TransportResponse{StatusCode: 403}},
		TransportScript{Response: core.TransportResponse{StatusCode: 200}},
	)

	first, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: "POST",
		URL:    "https://svc.example.on.aws/",
	})
	if err != nil {
		t.Fatalf("first fake call: %v", err)
	}
	if first.StatusCode != 403 {
		t.Fatalf("expected first scripted status 403, got %d", first.StatusCode)
	}

	second, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: "POST",
		URL:    "https://svc.example.on.aws/",
	})
	if err != nil {
		t.Fatalf("second fake call: %v", err)
	}
	if second.StatusCode != 200 {
		t.Fatalf("expected second scripted status 200, got %d", second.StatusCode)
	}

	requests := adapter.Requests()
	if len(requests) != 2 {
		t.Fatalf("expected two captured requests, got %d", len(requests))
	}
}

func TestValidateTransportAdapterConformance(t *testing.T) {
	adapter := NewFakeTransportAdapter("rest", TransportScript{
		Response: core.TransportResponse{StatusCode: 200},
	})
	if err := ValidateTransportAdapterConformance(context.Background(), adapter, core.TransportRequest{
		Method: "POST",
		URL:    "https://svc.example.on.aws/",
	}); err != nil {
		t.Fatalf("validate transport adapter conformance: %v", err)
	}
	if err := ValidateTransportAdapterConformance(context.Background(), NewFakeTransportAdapter(""), core.TransportRequest{}); err == nil {
		t.Fatalf("expected missing kind to fail conformance")
	}
}

func TestFakePagedLister_ChainsPages(t *testing.T) {
	lister := NewFakePagedLister().WithPages(core.EntityKindServiceNetwork,
		[]core.Entity{{Name: "a", ID: "1"}},
		[]core.Entity{{Name: "b", ID: "2"}},
		[]core.Entity{{Name: "c", ID: "3"}},
	)

	pages, err := ValidateListerConformance(context.Background(), lister, core.EntityKindServiceNetwork)
	if err != nil {
		t.Fatalf("validate lister conformance: %v", err)
	}
	if pages != 3 {
		t.Fatalf("expected 3 pages, got %d", pages)
	}
	calls := lister.Calls()
	if len(calls) != 3 || calls[0] != "" || calls[1] != "p2" || calls[2] != "p3" {
		t.Fatalf("unexpected token sequence %#v", calls)
	}
}

func TestFakePagedLister_EmptyKindHasOneEmptyPage(t *testing.T) {
	lister := NewFakePagedLister()
	page, err := lister.ListEntities(context.Background(), core.EntityKindService, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 || page.HasMore() {
		t.Fatalf("expected a single empty page, got %#v", page)
	}
}

func TestFakePagedLister_FailPage(t *testing.T) {
	boom := errors.New("boom")
	lister := NewFakePagedLister().
		WithPages(core.EntityKindService, []core.Entity{{Name: "a", ID: "1"}}, []core.Entity{{Name: "b", ID: "2"}}).
		FailPage(2, boom)

	_, err := ValidateListerConformance(context.Background(), lister, core.EntityKindService)
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
}

func TestValidateListerConformance_DetectsRepeatedToken(t *testing.T) {
	lister := core.EntityListerFunc(func(context.Context, core.EntityKind, string) (core.ListingPage, error) {
		return core.ListingPage{Items: []core.Entity{{Name: "a", ID: "1"}}, NextToken: "same"}, nil
	})
	if _, err := ValidateListerConformance(context.Background(), lister, core.EntityKindService); err == nil {
		t.Fatalf("expected repeated token to fail conformance")
	}
}

func TestValidateListerConformance_RejectsUnnamedEntities(t *testing.T) {
	lister := NewFakePagedLister().WithPages(core.EntityKindService, []core.Entity{{Name: "", ID: "1"}})
	if _, err := ValidateListerConformance(context.Background(), lister, core.EntityKindService); err == nil {
		t.Fatalf("expected unnamed entity to fail conformance")
	}
}
