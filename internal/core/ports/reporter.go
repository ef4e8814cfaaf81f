package ports

// Reporter is the user-facing progress sink of a caching run.
//
//go:generate go run go.uber.org/mock/mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Info prints a progress line.
	Info(msg string)
	// Confirm prints a success line.
	Confirm(msg string)
	// Warn prints a warning line.
	Warn(msg string)
	// Error prints a failure.
	Error(err error)
}
