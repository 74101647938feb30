package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shhac/cogview/internal/domain"
)

func asAPIError(err error) *domain.APIError {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// ClassifyAPIError maps an API error response to user-facing metadata.
func ClassifyAPIError(apiErr *domain.APIError) *UIError {
	if apiErr == nil {
		return nil
	}
	return classifyAPIError(apiErr, apiErr)
}

// statusRule is the presentation for one HTTP status. An empty message means
// the service's own message is shown.
type statusRule struct {
	severity ErrorSeverity
	title    string
	message  string
	recovery []string
	actions  []ErrorAction
}

var statusRules = map[int]statusRule{
	http.StatusBadRequest: {
		severity: SeverityError,
		title:    "Invalid Request",
		recovery: []string{"Check field values", "See details for specifics"},
		actions:  []ErrorAction{{Label: "View Details"}},
	},
	http.StatusUnauthorized: {
		severity: SeverityError,
		title:    "Access Denied",
		message:  "The subscription key was rejected.",
		recovery: []string{"Check the key in Settings", "Verify the endpoint region matches the key"},
		actions:  []ErrorAction{{Label: "Settings"}},
	},
	http.StatusForbidden: {
		severity: SeverityError,
		title:    "Quota Exceeded",
		message:  "The subscription is not allowed to call this operation.",
		recovery: []string{"Check the pricing tier", "Check the subscription quota"},
	},
	http.StatusNotFound: {
		severity: SeverityError,
		title:    "Not Found",
		recovery: []string{"Check the identifiers", "List existing resources"},
	},
	http.StatusConflict: {
		severity: SeverityError,
		title:    "Conflict",
		recovery: []string{"Use a different identifier", "Wait for training to finish"},
	},
	http.StatusTooManyRequests: {
		severity: SeverityWarning,
		title:    "Rate Limited",
		message:  "Too many requests for the current pricing tier.",
		recovery: []string{"Wait a moment and try again"},
		actions:  []ErrorAction{retryAction},
	},
}

var (
	serverErrorRule = statusRule{
		severity: SeverityError,
		title:    "Service Error",
		message:  "The service encountered an unexpected error.",
		recovery: []string{"Try again later"},
		actions:  []ErrorAction{retryAction},
	}
	otherStatusRule = statusRule{
		severity: SeverityError,
		title:    "Request Failed",
		recovery: []string{"Try again"},
	}
)

func ruleForStatus(code int) statusRule {
	if rule, ok := statusRules[code]; ok {
		return rule
	}
	if code >= 500 {
		return serverErrorRule
	}
	return otherStatusRule
}

func classifyAPIError(err error, apiErr *domain.APIError) *UIError {
	rule := ruleForStatus(apiErr.StatusCode)
	msg := rule.message
	if msg == "" {
		msg = apiErr.Message
	}
	details := fmt.Sprintf("HTTP %d %s\nCode: %s\n%s",
		apiErr.StatusCode, http.StatusText(apiErr.StatusCode), apiErr.Code, apiErr.Message)
	return &UIError{
		Err:      err,
		Severity: rule.severity,
		Title:    rule.title,
		Message:  msg,
		Recovery: rule.recovery,
		Actions:  rule.actions,
		Details:  details,
	}
}
