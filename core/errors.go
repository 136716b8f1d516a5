package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	LatticeErrorBadInput       = "LATTICE_BAD_INPUT"
	LatticeErrorFetchFailed    = "LATTICE_FETCH_FAILED"
	LatticeErrorNotFound       = "LATTICE_ENTITY_NOT_FOUND"
	LatticeErrorSigningFailed  = "LATTICE_SIGNING_FAILED"
	LatticeErrorForwardFailed  = "LATTICE_FORWARD_FAILED"
	LatticeErrorRateLimited    = "LATTICE_RATE_LIMITED"
	LatticeErrorForbidden      = "LATTICE_FORBIDDEN"
	LatticeErrorInternal       = "LATTICE_INTERNAL_ERROR"
	FetchReasonProviderError   = "provider_error"
	FetchReasonRepeatedToken   = "repeated_token"
	FetchReasonContextCanceled = "context_canceled"
)

// NewFetchError reports a listing page that could not be fetched. It is
// never used for a page that was fetched but held no match.
func NewFetchError(source error, targetName string, page int, token string, reason string) *goerrors.Error {
	if strings.TrimSpace(reason) == "" {
		reason = FetchReasonProviderError
	}
	message := fmt.Sprintf("core: failed to fetch listing page %d while resolving %q", page, targetName)
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryExternal)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, message)
		// Wrap keeps the category of a rich source such as a throttled call.
		err.Category = goerrors.CategoryExternal
	}
	return err.
		WithCode(http.StatusBadGateway).
		WithTextCode(LatticeErrorFetchFailed).
		WithMetadata(map[string]any{
			"target_name": targetName,
			"page":        page,
			"token":       token,
			"reason":      reason,
		})
}

// NewNotFoundError reports that every reachable page was scanned without a
// match for targetName.
func NewNotFoundError(kind EntityKind, targetName string, pagesFetched int) *goerrors.Error {
	return goerrors.New(
		fmt.Sprintf("did not find the %s %q", kind.Label(), targetName),
		goerrors.CategoryNotFound,
	).
		WithCode(http.StatusNotFound).
		WithTextCode(LatticeErrorNotFound).
		WithMetadata(map[string]any{
			"target_name":   targetName,
			"kind":          string(kind),
			"pages_fetched": pagesFetched,
		})
}

func NewSigningError(source error, message string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "core: request signing failed"
	}
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryAuth)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryAuth, message)
	}
	return err.
		WithCode(http.StatusUnauthorized).
		WithTextCode(LatticeErrorSigningFailed)
}

func IsFetchError(err error) bool {
	return hasTextCode(err, LatticeErrorFetchFailed)
}

func IsNotFoundError(err error) bool {
	return hasTextCode(err, LatticeErrorNotFound)
}

func IsSigningError(err error) bool {
	return hasTextCode(err, LatticeErrorSigningFailed)
}

func hasTextCode(err error, code string) bool {
	for err != nil {
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			return false
		}
		if rich.TextCode == code {
			return true
		}
		err = rich.Source
	}
	return false
}

func latticeErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureLatticeErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "did not find"), strings.Contains(msg, "not found"):
		return newLatticeError(err.Error(), goerrors.CategoryNotFound, LatticeErrorNotFound)
	case strings.Contains(msg, "throttl"), strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many requests"):
		return newLatticeError(err.Error(), goerrors.CategoryRateLimit, LatticeErrorRateLimited)
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "accessdenied"):
		return newLatticeError(err.Error(), goerrors.CategoryAuthz, LatticeErrorForbidden)
	case strings.Contains(msg, "sign"):
		return newLatticeError(err.Error(), goerrors.CategoryAuth, LatticeErrorSigningFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "unsupported"):
		return newLatticeError(err.Error(), goerrors.CategoryBadInput, LatticeErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureLatticeErrorEnvelope(mapped)
}

func newLatticeError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureLatticeErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureLatticeErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = latticeHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultLatticeTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultLatticeTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return LatticeErrorBadInput
	case goerrors.CategoryNotFound:
		return LatticeErrorNotFound
	case goerrors.CategoryAuth:
		return LatticeErrorSigningFailed
	case goerrors.CategoryAuthz:
		return LatticeErrorForbidden
	case goerrors.CategoryRateLimit:
		return LatticeErrorRateLimited
	case goerrors.CategoryExternal:
		return LatticeErrorForwardFailed
	default:
		return LatticeErrorInternal
	}
}

func latticeHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
