package system

import "context"

// Service represents a lifecycle-managed component. Background jobs register
// with the Manager so they start and stop with the application.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
