package errors

import (
	"context"
	"errors"
)

// ErrorSeverity indicates how prominently an error is surfaced.
type ErrorSeverity int

const (
	SeverityInfo ErrorSeverity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

// ErrorAction is a button offered alongside an error.
type ErrorAction struct {
	Label   string
	Handler func()
}

// UIError wraps an error with the text shown in dialogs and the status bar.
type UIError struct {
	Err      error
	Severity ErrorSeverity
	Title    string
	Message  string
	Recovery []string // bullet points
	Actions  []ErrorAction
	Details  string // collapsed by default
}

func (e UIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Title
}

func (e UIError) Unwrap() error {
	return e.Err
}

// HasAction reports whether the error offers an action with the given label.
func (e UIError) HasAction(label string) bool {
	for _, a := range e.Actions {
		if a.Label == label {
			return true
		}
	}
	return false
}

var retryAction = ErrorAction{Label: "Retry"}

// sentinelRule describes the UIError produced for errors matching target.
type sentinelRule struct {
	targets  []error
	severity ErrorSeverity
	title    string
	message  string
	recovery []string
	actions  []ErrorAction
}

var sentinelRules = []sentinelRule{
	{
		targets:  []error{context.DeadlineExceeded, ErrTimeout},
		severity: SeverityError,
		title:    "Request Timeout",
		message:  "The service took too long to respond.",
		recovery: []string{"Try again", "Raise the request timeout in Preferences"},
		actions:  []ErrorAction{retryAction},
	},
	{
		targets:  []error{context.Canceled},
		severity: SeverityInfo,
		title:    "Request Cancelled",
		message:  "The request was cancelled before a response arrived.",
	},
	{
		targets:  []error{ErrUserCancelled},
		severity: SeverityInfo,
		title:    "Cancelled",
		message:  "Operation cancelled by user.",
	},
	{
		targets:  []error{ErrConfigurationNotSet},
		severity: SeverityWarning,
		title:    "Not Configured",
		message:  "No endpoint and key are configured for this service.",
		recovery: []string{"Add a profile in Settings", "Activate an existing profile"},
		actions:  []ErrorAction{{Label: "Settings"}},
	},
}

func (r sentinelRule) matches(err error) bool {
	for _, target := range r.targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (r sentinelRule) build(err error) *UIError {
	return &UIError{
		Err:      err,
		Severity: r.severity,
		Title:    r.title,
		Message:  r.message,
		Recovery: r.recovery,
		Actions:  r.actions,
	}
}

// ClassifyError converts err into a UIError. API errors are classified by HTTP
// status, then sentinels, then validation failures; anything else is unexpected.
func ClassifyError(err error) *UIError {
	if err == nil {
		return nil
	}

	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr
	}

	if apiErr := asAPIError(err); apiErr != nil {
		return classifyAPIError(err, apiErr)
	}

	for _, rule := range sentinelRules {
		if rule.matches(err) {
			return rule.build(err)
		}
	}

	if msg, ok := validationMessage(err); ok {
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  msg,
			Recovery: []string{"Correct the highlighted fields and save again"},
			Details:  err.Error(),
		}
	}

	return &UIError{
		Err:      err,
		Severity: SeverityError,
		Title:    "Unexpected Error",
		Message:  "An unexpected error occurred.",
		Recovery: []string{"Try again"},
		Details:  err.Error(),
	}
}

func validationMessage(err error) (string, bool) {
	var list ValidationErrors
	if errors.As(err, &list) {
		return list.Error(), true
	}
	var single ValidationError
	if errors.As(err, &single) {
		return single.Message, true
	}
	return "", false
}
