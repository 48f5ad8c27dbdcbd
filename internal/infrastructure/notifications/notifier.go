// Package notifications carries flow outcomes to whatever surface the host
// application renders them on. The orchestrator only knows the domain
// interface; the host decides whether that means toasts, a CLI, or a log.
package notifications

import "log"

// LogNotifier writes notifications to the standard logger. It is the
// default sink for headless hosts and the smoke CLI.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a notifier backed by the default logger
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.Default()}
}

// NewLogNotifierWith creates a notifier backed by a specific logger
func NewLogNotifierWith(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success implements domain.Notifier
func (n *LogNotifier) Success(message string) {
	n.logger.Printf("notify success: %s", message)
}

// Error implements domain.Notifier
func (n *LogNotifier) Error(message string) {
	n.logger.Printf("notify error: %s", message)
}

// Info implements domain.Notifier
func (n *LogNotifier) Info(message string) {
	n.logger.Printf("notify info: %s", message)
}
