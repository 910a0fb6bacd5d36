package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Dispatch core (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Invalid command result",
		Detail:   "A task command returned a thenable that cannot be awaited. Return nil and call the completion callback, or return a non-nil future.",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Render target failed",
		Detail:   "The render target returned an error while drawing a frame. The model keeps its last committed value.",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Loop closed",
		Detail:   "Work was posted to an event loop that has already stopped.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Dispatch queue full",
		Detail:   "The event loop queue is full. A producer is posting faster than the loop drains.",
	},

	// ============================================
	// Live transport (E010-E029)
	// ============================================

	"E010": {
		Category: CategoryProtocol,
		Message:  "Handler not found",
		Detail:   "No event handler is registered for this element and event. The view may have re-rendered with different handlers.",
	},
	"E011": {
		Category: CategoryProtocol,
		Message:  "Invalid event message",
		Detail:   "The client sent a message that is not a valid event.",
	},
	"E012": {
		Category: CategoryProtocol,
		Message:  "Unsupported handler type",
		Detail:   "Event handlers must be func() or func(string).",
	},

	// ============================================
	// Configuration (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No microfun.json, microfun.yaml or microfun.toml was found.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},

	// ============================================
	// Snapshot storage (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryStorage,
		Message:  "Snapshot not found",
		Detail:   "No snapshot has been recorded yet.",
	},
	"E131": {
		Category: CategoryStorage,
		Message:  "Snapshot storage failed",
		Detail:   "The snapshot store returned an error.",
	},

	// ============================================
	// CLI (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The live server stopped with an error.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns all registered codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
