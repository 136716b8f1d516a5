package core

import (
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestLatticeErrorMapper_AssignsStableCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		textCode string
		code     int
	}{
		{name: "not found text", err: errors.New("did not find the thing"), textCode: LatticeErrorNotFound, code: 404},
		{name: "throttled", err: errors.New("ThrottlingException: Rate exceeded"), textCode: LatticeErrorRateLimited, code: 429},
		{name: "access denied", err: errors.New("AccessDeniedException"), textCode: LatticeErrorForbidden, code: 403},
		{name: "required", err: errors.New("core: endpoint is required"), textCode: LatticeErrorBadInput, code: 400},
		{name: "external category", err: goerrors.New("boom", goerrors.CategoryExternal), textCode: LatticeErrorForwardFailed, code: 502},
		{name: "internal category", err: goerrors.New("boom", goerrors.CategoryInternal), textCode: LatticeErrorInternal, code: 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := latticeErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected text code %s, got %s", tc.textCode, mapped.TextCode)
			}
			if mapped.Code != tc.code {
				t.Fatalf("expected code %d, got %d", tc.code, mapped.Code)
			}
		})
	}
	if latticeErrorMapper(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestLatticeErrorMapper_KeepsExistingEnvelope(t *testing.T) {
	original := NewNotFoundError(EntityKindService, "orders", 3)
	mapped := latticeErrorMapper(original)
	if mapped != original {
		t.Fatalf("expected the same rich error instance")
	}
	if mapped.Metadata["pages_fetched"] != 3 {
		t.Fatalf("expected metadata to survive, got %#v", mapped.Metadata)
	}
}

func TestNewFetchError_ForcesExternalCategory(t *testing.T) {
	source := goerrors.New("ThrottlingException: rate exceeded", goerrors.CategoryRateLimit).
		WithCode(429).
		WithTextCode(LatticeErrorRateLimited)

	err := NewFetchError(source, "mesh", 2, "t2", FetchReasonProviderError)
	if err.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", err.Category)
	}
	if err.TextCode != LatticeErrorFetchFailed || err.Code != 502 {
		t.Fatalf("expected fetch envelope, got %s/%d", err.TextCode, err.Code)
	}
	if source.Category != goerrors.CategoryRateLimit {
		t.Fatalf("expected source to keep its own category, got %q", source.Category)
	}
	if !IsFetchError(err) {
		t.Fatalf("expected fetch predicate to match")
	}
}

func TestNewNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError(EntityKindServiceNetwork, "mesh-a", 1)
	if err.Error() == "" || !strings.Contains(err.Error(), `did not find the ServiceNetwork "mesh-a"`) {
		t.Fatalf("unexpected message %q", err.Error())
	}
	svcErr := NewNotFoundError(EntityKindService, "orders", 1)
	if !strings.Contains(svcErr.Error(), "Service \"orders\"") {
		t.Fatalf("unexpected message %q", svcErr.Error())
	}
}

func TestErrorPredicates_WalkWrappedChain(t *testing.T) {
	inner := NewFetchError(errors.New("timeout"), "mesh", 2, "t2", "")
	outer := goerrors.Wrap(inner, goerrors.CategoryOperation, "query failed")

	if !IsFetchError(outer) {
		t.Fatalf("expected fetch error to be found through wrapper")
	}
	if IsNotFoundError(outer) || IsSigningError(outer) {
		t.Fatalf("unexpected predicate match")
	}
	if inner.Metadata["reason"] != FetchReasonProviderError {
		t.Fatalf("expected default reason, got %#v", inner.Metadata["reason"])
	}
	if IsFetchError(errors.New("plain")) || IsFetchError(nil) {
		t.Fatalf("plain errors are not fetch errors")
	}
}

func TestNewSigningError(t *testing.T) {
	err := NewSigningError(nil, "")
	if err.Code != 401 || err.TextCode != LatticeErrorSigningFailed {
		t.Fatalf("unexpected signing envelope %#v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryAuth) {
		t.Fatalf("expected auth category")
	}
}
