// Package navigation provides Navigator implementations for hosts without
// a real router.
package navigation

import "log"

// LogNavigator records navigation to the standard logger. Web hosts supply
// their own Navigator wired to the router; this one serves headless use.
type LogNavigator struct {
	logger *log.Logger
}

// NewLogNavigator creates a navigator backed by the default logger
func NewLogNavigator() *LogNavigator {
	return &LogNavigator{logger: log.Default()}
}

// NavigateTo implements domain.Navigator
func (n *LogNavigator) NavigateTo(path string) {
	n.logger.Printf("navigate: %s", path)
}
