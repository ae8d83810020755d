package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"heritageguard/internal/domain"
)

// errorFromResponse maps an API error response onto the domain error
// taxonomy. The response body is consumed.
func errorFromResponse(resp *http.Response) error {
	detail := readDetail(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &domain.AuthorizationError{Message: "please sign in again", SignIn: true}
	case resp.StatusCode == http.StatusForbidden:
		msg := "you lack permission for this operation"
		if detail != "" {
			msg = detail
		}
		return &domain.AuthorizationError{Message: msg}
	case resp.StatusCode == http.StatusNotFound:
		msg := "item no longer exists"
		if detail != "" {
			msg = detail
		}
		return &domain.NotFoundError{Message: msg}
	case resp.StatusCode == http.StatusConflict:
		if detail == "" {
			detail = "the operation conflicts with the current server state"
		}
		return &domain.ConflictError{Message: detail}
	case resp.StatusCode >= 500:
		if detail == "" {
			detail = "the server could not complete the request"
		}
		return &domain.TransportError{Message: detail}
	default:
		// Remaining 4xx: the server rejected the request body. The
		// client validates before submitting, so this is surfaced as a
		// validation failure rather than a transport fault.
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &domain.ValidationError{Message: detail}
	}
}

// readDetail extracts the RFC 7807 detail string, tolerating non-JSON
// bodies.
func readDetail(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return ""
	}
	var problem problemDetail
	if err := json.Unmarshal(body, &problem); err != nil {
		return ""
	}
	if problem.Detail != "" {
		return problem.Detail
	}
	return problem.Title
}

func wrapTransport(op string, err error) error {
	return &domain.TransportError{Message: op, Err: err}
}
