package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestResolver_SinglePageMatch(t *testing.T) {
	lister := newScriptedLister(ListingPage{Items: []Entity{{Name: "a", ID: "1"}}})

	result, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "a"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.ID != "1" {
		t.Fatalf("expected id 1, got %q", result.ID)
	}
	if result.PagesFetched != 1 || lister.callCount() != 1 {
		t.Fatalf("expected one fetch, got pages=%d calls=%d", result.PagesFetched, lister.callCount())
	}
	if result.Kind != EntityKindServiceNetwork {
		t.Fatalf("expected default kind service_network, got %q", result.Kind)
	}
}

func TestResolver_MatchOnSecondPage(t *testing.T) {
	lister := newScriptedLister(
		ListingPage{Items: []Entity{{Name: "a", ID: "1"}}, NextToken: "t2"},
		ListingPage{Items: []Entity{{Name: "b", ID: "2"}}},
	)

	result, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "b"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.ID != "2" {
		t.Fatalf("expected id 2, got %q", result.ID)
	}
	if lister.callCount() != 2 {
		t.Fatalf("expected two fetches, got %d", lister.callCount())
	}
	tokens := lister.tokens()
	if tokens[0] != "" || tokens[1] != "t2" {
		t.Fatalf("expected tokens [\"\" t2], got %#v", tokens)
	}
}

func TestResolver_NotFoundAfterLastPage(t *testing.T) {
	lister := newScriptedLister(ListingPage{Items: []Entity{{Name: "a", ID: "1"}}})

	_, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "z"})
	if err == nil {
		t.Fatalf("expected not found error")
	}
	if !IsNotFoundError(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if IsFetchError(err) {
		t.Fatalf("not found must not be reported as a fetch error")
	}
	if !strings.Contains(err.Error(), `"z"`) {
		t.Fatalf("expected message to name the target, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "ServiceNetwork") {
		t.Fatalf("expected message to name the entity kind, got %q", err.Error())
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category")
	}
}

func TestResolver_MatchOnPageKFetchesExactlyKPages(t *testing.T) {
	for k := 1; k <= 5; k++ {
		t.Run(fmt.Sprintf("page_%d", k), func(t *testing.T) {
			pages := make([]ListingPage, 0, 6)
			for index := 1; index <= 6; index++ {
				page := ListingPage{Items: entities(fmt.Sprintf("filler-%d", index))}
				if index == k {
					page.Items = append(page.Items, Entity{Name: "target", ID: fmt.Sprintf("id-%d", k)})
				}
				if index < 6 {
					page.NextToken = fmt.Sprintf("t%d", index+1)
				}
				pages = append(pages, page)
			}
			lister := newScriptedLister(pages...)

			result, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "target"})
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if result.ID != fmt.Sprintf("id-%d", k) {
				t.Fatalf("expected id-%d, got %q", k, result.ID)
			}
			if lister.callCount() != k || result.PagesFetched != k {
				t.Fatalf("expected %d fetches, got calls=%d pages=%d", k, lister.callCount(), result.PagesFetched)
			}
		})
	}
}

func TestResolver_FirstMatchWins(t *testing.T) {
	lister := newScriptedLister(
		ListingPage{Items: []Entity{{Name: "dup", ID: "first"}, {Name: "dup", ID: "second"}}, NextToken: "t2"},
		ListingPage{Items: []Entity{{Name: "dup", ID: "third"}}},
	)

	result, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "dup"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.ID != "first" {
		t.Fatalf("expected first match, got %q", result.ID)
	}
	if lister.callCount() != 1 {
		t.Fatalf("expected page 2 not to be fetched, got %d calls", lister.callCount())
	}
}

func TestResolver_ExactNameMatch(t *testing.T) {
	lister := newScriptedLister(ListingPage{Items: []Entity{
		{Name: "Network", ID: "upper"},
		{Name: "network ", ID: "padded"},
	}})

	_, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "network"})
	if !IsNotFoundError(err) {
		t.Fatalf("expected not found for near-miss names, got %v", err)
	}
}

func TestResolver_FetchErrorOnLaterPageIsNotNotFound(t *testing.T) {
	providerErr := errors.New("ThrottlingException: rate exceeded")
	lister := newScriptedLister(
		ListingPage{Items: entities("a"), NextToken: "t2"},
		ListingPage{Items: entities("target")},
	).failOn("t2", providerErr)

	_, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "target"})
	if err == nil {
		t.Fatalf("expected fetch error")
	}
	if !IsFetchError(err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if IsNotFoundError(err) {
		t.Fatalf("fetch failure must not be reported as not found")
	}
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected provider error to stay in the chain")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error")
	}
	if rich.Metadata["page"] != 2 {
		t.Fatalf("expected failing page 2 in metadata, got %#v", rich.Metadata["page"])
	}
	if rich.Metadata["token"] != "t2" {
		t.Fatalf("expected token t2 in metadata, got %#v", rich.Metadata["token"])
	}
	if rich.Metadata["reason"] != FetchReasonProviderError {
		t.Fatalf("expected provider_error reason, got %#v", rich.Metadata["reason"])
	}
}

func TestResolver_RepeatedTokenStops(t *testing.T) {
	lister := &scriptedLister{
		pages: map[string]ListingPage{
			"":   {Items: entities("a"), NextToken: "t2"},
			"t2": {Items: entities("b"), NextToken: "t2"},
		},
		errs: map[string]error{},
	}

	_, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "z"})
	if !IsFetchError(err) {
		t.Fatalf("expected fetch error for repeated token, got %v", err)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Metadata["reason"] != FetchReasonRepeatedToken {
		t.Fatalf("expected repeated_token reason, got %v", err)
	}
	if lister.callCount() != 2 {
		t.Fatalf("expected two fetches before stopping, got %d", lister.callCount())
	}
}

func TestResolver_TokenCycleStops(t *testing.T) {
	lister := &scriptedLister{
		pages: map[string]ListingPage{
			"":   {Items: entities("a"), NextToken: "tA"},
			"tA": {Items: entities("b"), NextToken: "tB"},
			"tB": {Items: entities("c"), NextToken: "tA"},
		},
		errs: map[string]error{},
	}

	_, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "z"})
	if !IsFetchError(err) {
		t.Fatalf("expected fetch error for token cycle, got %v", err)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Metadata["reason"] != FetchReasonRepeatedToken {
		t.Fatalf("expected repeated_token reason, got %v", err)
	}
	if lister.callCount() != 3 {
		t.Fatalf("expected three fetches before stopping, got %d", lister.callCount())
	}
}

func TestResolver_NormalizesKindAliases(t *testing.T) {
	for _, raw := range []string{"network", "service-network", "SERVICE_NETWORK"} {
		lister := newScriptedLister(ListingPage{Items: entities("mesh")})

		result, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "mesh", Kind: EntityKind(raw)})
		if err != nil {
			t.Fatalf("resolve with kind %q: %v", raw, err)
		}
		if lister.calls[0].kind != EntityKindServiceNetwork || result.Kind != EntityKindServiceNetwork {
			t.Fatalf("expected canonical kind for %q, got lister=%q result=%q", raw, lister.calls[0].kind, result.Kind)
		}
	}
}

func TestResolver_CanceledContextStopsPagination(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lister := newScriptedLister(
		ListingPage{Items: entities("a"), NextToken: "t2"},
		ListingPage{Items: entities("target")},
	)
	lister.before = func(token string) {
		if token == "" {
			cancel()
		}
	}

	_, err := NewResolver(lister).Resolve(ctx, ResolutionRequest{TargetName: "target"})
	if !IsFetchError(err) {
		t.Fatalf("expected fetch error after cancel, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
	if lister.callCount() != 1 {
		t.Fatalf("expected no fetch after cancel, got %d", lister.callCount())
	}
}

func TestResolver_ServiceKindIsPassedToLister(t *testing.T) {
	lister := newScriptedLister(ListingPage{Items: entities("svc")})

	result, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "svc", Kind: EntityKindService})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result.Kind != EntityKindService {
		t.Fatalf("expected service kind, got %q", result.Kind)
	}
	if lister.calls[0].kind != EntityKindService {
		t.Fatalf("expected lister to receive service kind, got %q", lister.calls[0].kind)
	}
}

func TestResolver_RejectsEmptyTarget(t *testing.T) {
	lister := newScriptedLister(ListingPage{Items: entities("a")})

	if _, err := NewResolver(lister).Resolve(context.Background(), ResolutionRequest{TargetName: "  "}); err == nil {
		t.Fatalf("expected validation error")
	}
	if lister.callCount() != 0 {
		t.Fatalf("expected no fetch for invalid request")
	}
}

func TestResolver_NoLister(t *testing.T) {
	if _, err := NewResolver(nil).Resolve(context.Background(), ResolutionRequest{TargetName: "a"}); err == nil {
		t.Fatalf("expected error without lister")
	}
}
