package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reactivity Errors (L001-L019)
	// ============================================

	"L001": {
		Category: CategoryReactivity,
		Message:  "State mutated during render",
		Detail:   "State values should not be modified while a render function is running. Move the write into a method, action, or lifecycle hook.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L001",
	},
	"L002": {
		Category: CategoryReactivity,
		Message:  "Circular dependency detected",
		Detail:   "A computed property or effect reads a value it is responsible for producing. Check your computed dependencies.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L002",
	},
	"L003": {
		Category: CategoryReactivity,
		Message:  "Effect stopped but still referenced",
		Detail:   "A stopped effect no longer reacts to changes. Reads through it run untracked.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L003",
	},

	// ============================================
	// Render Errors (L020-L039)
	// ============================================

	"L020": {
		Category: CategoryRender,
		Message:  "Teleport target not found",
		Detail:   "The teleport selector matched no host node. Its children were not rendered.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L020",
	},
	"L021": {
		Category: CategoryRender,
		Message:  "Duplicate keys in child list",
		Detail:   "Two siblings share a reconciliation key. Keyed diffing assumes keys are unique within a list.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L021",
	},

	// ============================================
	// Component Errors (L040-L059)
	// ============================================

	"L040": {
		Category: CategoryComponent,
		Message:  "Component has no render function",
		Detail:   "Neither a render function nor a compiled template is attached to this component. A placeholder comment was rendered instead.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L040",
	},
	"L041": {
		Category: CategoryComponent,
		Message:  "Unknown component name",
		Detail:   "The name did not resolve through the instance or app component registries.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L041",
	},
	"L042": {
		Category: CategoryComponent,
		Message:  "Unknown method or action",
		Detail:   "The invoked name is not a registered method or action on this component.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L042",
	},
	"L043": {
		Category: CategoryComponent,
		Message:  "Lifecycle hook registered outside setup",
		Detail:   "Hooks attach to the instance whose Setup or render is executing. Register them inside Setup.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L043",
	},

	// ============================================
	// Protocol Errors (L060-L079)
	// ============================================

	"L060": {
		Category: CategoryProtocol,
		Message:  "Invalid event frame",
		Detail:   "The websocket frame could not be decoded as an event message.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L060",
	},
	"L061": {
		Category: CategoryProtocol,
		Message:  "Session not found",
		Detail:   "The session ID is invalid or the session has expired.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L061",
	},
	"L062": {
		Category: CategoryProtocol,
		Message:  "Event for unmounted component",
		Detail:   "The event targeted a component instance that has been unmounted.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L062",
	},

	// ============================================
	// Config Errors (L080-L099)
	// ============================================

	"L080": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No lumen.json was found in the working directory or any parent.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L080",
	},
	"L081": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "lumen.json exists but could not be parsed as JSON.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L081",
	},
	"L082": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config field holds a value outside its allowed range.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L082",
	},

	// ============================================
	// CLI Errors (L100-L119)
	// ============================================

	"L100": {
		Category: CategoryCLI,
		Message:  "Unknown project template",
		Detail:   "The requested template name is not registered.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L100",
	},
	"L101": {
		Category: CategoryCLI,
		Message:  "Project directory already exists",
		Detail:   "Refusing to scaffold into a directory that already has files.",
		DocURL:   "https://lumen-ui.dev/docs/errors/L101",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
