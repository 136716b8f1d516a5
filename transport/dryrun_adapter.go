package transport

import (
	"context"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-lattice/core"
)

const KindDryRun = "dryrun"

// DryRunAdapter builds and signs requests without sending them. The
// response body is a plain text rendering of the signed request with
// credential headers masked.
type DryRunAdapter struct {
	Signer         core.Signer
	DefaultHeaders map[string]string
}

func NewDryRunAdapter(signer core.Signer) *DryRunAdapter {
	return &DryRunAdapter{Signer: signer, DefaultHeaders: map[string]string{}}
}

func (*DryRunAdapter) Kind() string {
	return KindDryRun
}

func (a *DryRunAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil {
		return core.TransportResponse{}, transportError(
			"transport: dry run adapter is nil",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			map[string]any{"adapter": KindDryRun},
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	httpReq, cancel, err := prepareRequest(ctx, KindDryRun, req, a.DefaultHeaders, a.Signer)
	defer cancel()
	if err != nil {
		return core.TransportResponse{}, err
	}

	headers := core.RedactHeaders(flattenHeaders(httpReq.Header))
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var out strings.Builder
	out.WriteString(httpReq.Method + " " + httpReq.URL.String() + "\n")
	for _, key := range keys {
		out.WriteString(key + ": " + headers[key] + "\n")
	}
	if len(req.Body) > 0 {
		out.WriteString("\n")
		out.Write(req.Body)
		out.WriteString("\n")
	}

	return core.TransportResponse{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       []byte(out.String()),
		Metadata: map[string]any{
			"kind":   KindDryRun,
			"signed": a.Signer != nil,
		},
	}, nil
}

var _ core.TransportAdapter = (*DryRunAdapter)(nil)
