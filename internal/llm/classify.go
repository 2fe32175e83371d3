package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// classifyStatus maps a provider HTTP status to the error taxonomy.
// Unrecognized statuses become a generic provider error.
func classifyStatus(provider string, status int, body string) *ReasoningError {
	kind := KindProvider
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
		// OpenAI reports exhausted billing quota with the same status.
		if strings.Contains(body, "insufficient_quota") {
			kind = KindQuotaExhausted
		}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuthentication
	case status == http.StatusPaymentRequired:
		kind = KindQuotaExhausted
	case status == http.StatusRequestTimeout:
		kind = KindTimeout
	case status >= 500:
		kind = KindServerError
	}

	return &ReasoningError{
		Kind:     kind,
		Provider: provider,
		Detail:   truncateBody(body),
	}
}

// classifyTransport maps request/transport failures to the error taxonomy.
func classifyTransport(provider string, err error) *ReasoningError {
	kind := KindConnection
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	}

	return &ReasoningError{
		Kind:     kind,
		Provider: provider,
		Err:      err,
	}
}

// truncateBody keeps error payloads loggable.
func truncateBody(body string) string {
	const limit = 512
	body = strings.TrimSpace(body)
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

// cleanMarkdownWrapper strips a ```json fence if the model wrapped its
// output despite the strict-JSON instruction.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
