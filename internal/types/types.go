package types

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Hooks provides lifecycle hooks for ledger mutations. OnMutation fires
// after a mutation committed; OnError fires when an operation was rejected
// before any state change.
type Hooks struct {
	OnMutation func(operation string)
	OnError    func(operation string, err error)
}
