package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Reactive Errors (R001-R019)
	// ============================================

	"R001": {
		Category:   CategoryReactive,
		Message:    "Unknown state key",
		Suggestion: "Declare the key in the initial data; only keys present at observation time are reactive",
	},
	"R002": {
		Category: CategoryReactive,
		Message:  "State path does not resolve",
	},
	"R003": {
		Category: CategoryReactive,
		Message:  "State decode failed",
	},
	"R004": {
		Category: CategoryReactive,
		Message:  "Watcher callback failed",
	},

	// ============================================
	// Render Errors (V001-V019)
	// ============================================

	"V001": {
		Category:   CategoryRender,
		Message:    "Render function missing",
		Suggestion: "Set Options.Render or a view in the project config",
	},
	"V002": {
		Category:   CategoryRender,
		Message:    "Mount element not found",
		Suggestion: "Check that the el id matches an element in the host tree",
	},
	"V003": {
		Category: CategoryRender,
		Message:  "Cannot replace a detached element",
	},
	"V004": {
		Category: CategoryRender,
		Message:  "Node has no realized element",
	},
	"V005": {
		Category: CategoryRender,
		Message:  "Render returned no tree",
	},
	"V006": {
		Category: CategoryRender,
		Message:  "View template failed",
	},

	// ============================================
	// Host Errors (H001-H019)
	// ============================================

	"H001": {
		Category: CategoryHost,
		Message:  "Invalid tag name",
	},
	"H002": {
		Category: CategoryHost,
		Message:  "Handle does not belong to this document",
	},
	"H003": {
		Category: CategoryHost,
		Message:  "Node is not a child of the given parent",
	},
	"H004": {
		Category: CategoryHost,
		Message:  "Text nodes cannot have children",
	},
	"H005": {
		Category: CategoryHost,
		Message:  "Insertion would create a cycle",
	},

	// ============================================
	// Configuration Errors (C001-C019)
	// ============================================

	"C001": {
		Category:   CategoryConfig,
		Message:    "Invalid reactree config",
		Suggestion: "Check that the file is valid JSON or YAML",
	},
	"C002": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Suggestion: "Run 'reactree init' to create one",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
	},
	"C004": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
	},
	"C005": {
		Category: CategoryConfig,
		Message:  "Invalid view template",
	},

	// ============================================
	// CLI Errors (X001-X019)
	// ============================================

	"X001": {
		Category:   CategoryCLI,
		Message:    "Invalid assignment",
		Suggestion: "Use key=value, e.g. --set count=1",
	},
	"X002": {
		Category: CategoryCLI,
		Message:  "Config file already exists",
	},

	// ============================================
	// Preview Errors (P001-P019)
	// ============================================

	"P001": {
		Category: CategoryPreview,
		Message:  "Invalid message format",
	},
	"P002": {
		Category: CategoryPreview,
		Message:  "Unknown message type",
	},
	"P003": {
		Category: CategoryPreview,
		Message:  "WebSocket upgrade failed",
	},

	// ============================================
	// Snapshot Errors (S001-S019)
	// ============================================

	"S001": {
		Category:   CategorySnapshot,
		Message:    "Snapshot sink not configured",
		Suggestion: "Set snapshot.dir or snapshot.bucket in the project config",
	},
	"S002": {
		Category: CategorySnapshot,
		Message:  "Snapshot upload failed",
	},
	"S003": {
		Category: CategorySnapshot,
		Message:  "Snapshot encoding failed",
	},
}

// Codes returns all registered error codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
