package upstream

//go:generate go run go.uber.org/mock/mockgen -source=./upstream.go -destination=./mocks/upstream_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	otelGlobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	breakerName = "upstream"

	maxErrorBody = 4 << 10
)

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == constant.Empty {
		return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}

	return fmt.Sprintf("upstream %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// StatusCode returns the upstream status carried by err, or 0 for transport errors.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	return 0
}

// File is a single multipart part forwarded to the upstream.
type File struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
}

type Client interface {
	// Do sends body as JSON and decodes a 2xx response into out. Nil body or out are skipped.
	Do(ctx context.Context, method, path string, query url.Values, body, out any) (err error)
	Upload(ctx context.Context, path string, files []File, out any) (err error)
}

type clientImpl struct {
	baseURL      string
	serviceToken string
	http         *http.Client
	breaker      *gobreaker.CircuitBreaker
	otel         otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	breakerCfg := cfg.Upstream.Breaker

	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    time.Duration(breakerCfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(breakerCfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return breakerCfg.FailureThreshold > 0 && counts.ConsecutiveFailures >= breakerCfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
		// 4xx answers are the upstream working as intended.
		IsSuccessful: func(err error) bool {
			code := StatusCode(err)

			return err == nil || (code >= http.StatusBadRequest && code < http.StatusInternalServerError)
		},
	}

	return &clientImpl{
		baseURL:      strings.TrimSuffix(cfg.Upstream.BaseURL, "/"),
		serviceToken: cfg.Upstream.ServiceToken,
		http:         &http.Client{Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second},
		breaker:      gobreaker.NewCircuitBreaker(settings),
		otel:         otel,
	}
}

func (c *clientImpl) Do(ctx context.Context, method, path string, query url.Values, body, out any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelUpstreamScopeName, constant.OtelUpstreamScopeName+".Do")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"http.method": method,
		"http.path":   path,
	})

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal upstream request: %w", err)
		}
	}

	return c.send(ctx, method, path, query, out, func() (io.Reader, string, error) {
		if payload == nil {
			return nil, constant.Empty, nil
		}

		return bytes.NewReader(payload), constant.ContentTypeJSON, nil
	})
}

func (c *clientImpl) Upload(ctx context.Context, path string, files []File, out any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelUpstreamScopeName, constant.OtelUpstreamScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"http.path":   path,
		"files.count": len(files),
	})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Name))
		header.Set(constant.RequestHeaderContentType, file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create multipart part: %w", err)
		}

		if _, err = io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("failed to copy multipart content: %w", err)
		}
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	payload := buf.Bytes()
	contentType := writer.FormDataContentType()

	return c.send(ctx, http.MethodPost, path, nil, out, func() (io.Reader, string, error) {
		return bytes.NewReader(payload), contentType, nil
	})
}

func (c *clientImpl) send(ctx context.Context, method, path string, query url.Values, out any, body func() (io.Reader, string, error)) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	_, err := c.breaker.Execute(func() (any, error) {
		reader, contentType, err := body()
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build upstream request: %w", err)
		}

		req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)
		if contentType != constant.Empty {
			req.Header.Set(constant.RequestHeaderContentType, contentType)
		}

		if token := c.token(ctx); token != constant.Empty {
			req.Header.Set(constant.RequestHeaderAuthorization, constant.BearerPrefix+token)
		}

		if requestID, ok := ctx.Value(constant.ContextKeyRequestID).(string); ok {
			req.Header.Set(constant.RequestHeaderRequestID, requestID)
		}

		otelGlobal.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

			return nil, &StatusError{
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(raw)),
			}
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)

			return nil, nil
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read upstream response: %w", err)
		}

		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}

		if err = json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("failed to decode upstream response of %s %s: %w", method, path, err)
		}

		return nil, nil
	})
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")

		return err
	}

	return nil
}

// token prefers the caller's bearer token and falls back to the service token.
func (c *clientImpl) token(ctx context.Context) string {
	if token, ok := ctx.Value(constant.ContextKeyToken).(string); ok && token != constant.Empty {
		return token
	}

	return c.serviceToken
}

// ToFailure maps a client error onto a failure. Upstream 4xx answers keep their meaning,
// anything else is reported as a failed fetch.
func ToFailure(err error, msg string) error {
	if err == nil {
		return nil
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return failure.FetchFailed(msg, err) //nolint:wrapcheck
	}

	detail := msg
	if statusErr.Body != constant.Empty {
		detail = fmt.Sprintf("%s: %s", msg, statusErr.Body)
	}

	switch statusErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return failure.BadRequestFromString(detail) //nolint:wrapcheck
	case http.StatusUnauthorized:
		return failure.Unauthorized(detail) //nolint:wrapcheck
	case http.StatusForbidden:
		return failure.Forbidden(detail) //nolint:wrapcheck
	case http.StatusNotFound:
		return failure.NotFound(detail) //nolint:wrapcheck
	case http.StatusConflict:
		return failure.Conflict(detail) //nolint:wrapcheck
	default:
		return failure.FetchFailed(msg, err) //nolint:wrapcheck
	}
}
