package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Forward sends req through the configured transport (which signs it) and
// returns the downstream response. Non-2xx downstream statuses are not
// errors; only failures to build, sign or deliver the request are.
func (s *Service) Forward(ctx context.Context, req ForwardRequest) (response ForwardResponse, err error) {
	if s == nil {
		return ForwardResponse{}, fmt.Errorf("core: service is nil")
	}
	startedAt := time.Now().UTC()
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodPost
	}
	fields := map[string]any{
		"endpoint": strings.TrimSpace(req.Endpoint),
		"method":   method,
	}
	defer func() {
		if err == nil {
			fields["status_code"] = response.StatusCode
			fields["response_bytes"] = len(response.Body)
		} else {
			fields["error_code"] = errorTextCode(err)
		}
		s.observeOperation(ctx, startedAt, "forward", err, fields)
	}()

	endpoint, err := ValidateEndpoint(req.Endpoint)
	if err != nil {
		err = s.mapError(err)
		return ForwardResponse{}, err
	}
	if s.transport == nil {
		err = s.mapError(s.errorFactory("core: forward transport is not configured", goerrors.CategoryInternal))
		return ForwardResponse{}, err
	}

	body := req.Body
	if body == "" && method != http.MethodGet && method != http.MethodHead {
		body = s.config.Forward.DefaultBody
	}
	headers := make(map[string]string, len(req.Headers)+1)
	for key, value := range req.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		headers[strings.TrimSpace(key)] = value
	}
	if !hasHeader(headers, "Content-Type") && body != "" {
		contentType := strings.TrimSpace(s.config.Forward.ContentType)
		if contentType == "" {
			contentType = DefaultForwardContentType
		}
		headers["Content-Type"] = contentType
	}
	fields["headers"] = RedactHeaders(headers)

	out, err := s.transport.Do(ctx, TransportRequest{
		Method:               method,
		URL:                  endpoint.String(),
		Headers:              headers,
		Body:                 []byte(body),
		Timeout:              s.config.ForwardTimeout(),
		MaxResponseBodyBytes: s.config.Forward.MaxResponseBodyBytes,
		Metadata: map[string]any{
			"transport": s.transport.Kind(),
		},
	})
	if err != nil {
		err = s.mapError(err)
		return ForwardResponse{}, err
	}
	return ForwardResponse{
		StatusCode: out.StatusCode,
		Status:     out.Status,
		Headers:    out.Headers,
		Body:       out.Body,
	}, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for key := range headers {
		if strings.EqualFold(key, name) {
			return true
		}
	}
	return false
}

func statusDescription(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("%d %s", code, text)
}
