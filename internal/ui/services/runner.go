// Package services holds one tab per Cognitive Services API. Each tab binds
// its widgets to a view model and previews the request it is about to send.
package services

import "context"

// Runner executes a view model operation off the UI goroutine with the
// application's timeout and cancellation applied.
type Runner func(op func(ctx context.Context))

// ErrorDetails opens a classified dialog for the view model's last error.
type ErrorDetails func(err error)
