package guard

import "github.com/qszone/naviguard/internal/infrastructure/logging"

// Indicator is the visual progress indicator driven by the loading guard.
// Implementations belong to the UI layer; this core only sequences calls.
type Indicator interface {
	// Start begins the progress display for a navigation.
	Start()
	// Finish completes the progress display.
	Finish()
	// Error switches the display into its error state.
	Error()
}

// TitleSink receives the derived document title after each navigation.
type TitleSink interface {
	SetTitle(title string)
}

// Notifier surfaces user-visible messages, e.g. a principal-fetch failure.
type Notifier interface {
	Error(message string)
}

// LogChrome is a headless UI chrome that logs indicator, title, and
// notification events. It stands in for real chrome in the demo binary and
// in tests.
type LogChrome struct {
	logger *logging.Logger
}

// NewLogChrome creates a log-backed chrome sink.
func NewLogChrome(logger *logging.Logger) *LogChrome {
	return &LogChrome{logger: logger.With("component", "chrome")}
}

// Start logs the start of the loading indicator.
func (c *LogChrome) Start() { c.logger.Debug("loading bar started") }

// Finish logs the completion of the loading indicator.
func (c *LogChrome) Finish() { c.logger.Debug("loading bar finished") }

// Error logs the indicator switching to its error state.
func (c *LogChrome) Error() { c.logger.Debug("loading bar errored") }

// SetTitle logs the derived document title.
func (c *LogChrome) SetTitle(title string) {
	c.logger.Info("document title updated", "title", title)
}

// LogNotifier logs user-visible messages instead of rendering them.
type LogNotifier struct {
	logger *logging.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

// Error logs an error message the UI would show to the user.
func (n *LogNotifier) Error(message string) {
	n.logger.Warn("user notification", "message", message)
}
