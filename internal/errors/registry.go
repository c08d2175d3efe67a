package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/docs/inject/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryConfig,
		Message:  "Content kind is not registered",
		Detail:   "The factory lacks a constructor for the requested content kind.",
		DocURL:   docBase + "E001",
	},
	"E002": {
		Category: CategoryUsage,
		Message:  "Capture writer was never established",
		Detail:   "Resolve was called before the page was rendered into Manager.Writer().",
		DocURL:   docBase + "E002",
	},
	"E003": {
		Category: CategoryConfig,
		Message:  "Constructor does not satisfy the kind contract",
		Detail:   "The collection built by the constructor does not implement the interface required by the kind.",
		DocURL:   docBase + "E003",
	},
	"E004": {
		Category: CategoryUsage,
		Message:  "Output writer is nil",
		DocURL:   docBase + "E004",
	},
	"E005": {
		Category: CategoryConfig,
		Message:  "Invalid injection point pattern",
		Detail:   "The pattern must compile and declare a named group called \"name\".",
		DocURL:   docBase + "E005",
	},

	// ============================================
	// Item Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryValidation,
		Message:  "Content item identity is empty",
		Detail:   "Names, ids, URLs and variable names must contain some text.",
		DocURL:   docBase + "E010",
	},
	"E011": {
		Category: CategoryConfig,
		Message:  "Content item type differs from the existing item with the same key",
		DocURL:   docBase + "E011",
	},
	"E012": {
		Category: CategoryValidation,
		Message:  "Script blocks must not include script tags",
		Detail:   "The collection writes the enclosing <script> element itself.",
		DocURL:   docBase + "E012",
	},
	"E013": {
		Category: CategoryValidation,
		Message:  "Value cannot be converted into a JavaScript native type",
		DocURL:   docBase + "E013",
	},

	// ============================================
	// Render Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryRender,
		Message:  "Content was added but not output because the page lacks an injection point",
		DocURL:   docBase + "E020",
	},
	"E021": {
		Category: CategoryUsage,
		Message:  "Manager is closed",
		Detail:   "A manager serves exactly one render pass and cannot be reused after Close.",
		DocURL:   docBase + "E021",
	},

	// ============================================
	// Config File Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		DocURL:   docBase + "E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Unknown error report mode",
		Detail:   "Use one of: none, log, error.",
		DocURL:   docBase + "E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		DocURL:   docBase + "E122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Unknown template engine",
		Detail:   "Use one of: underscore, knockout, kendo, jquery.",
		DocURL:   docBase + "E123",
	},
	"E140": {
		Category: CategoryCLI,
		Message:  "File already exists",
		DocURL:   docBase + "E140",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		DocURL:   docBase + "E141",
	},
	"E145": {
		Category: CategoryCLI,
		Message:  "Unknown site template",
		DocURL:   docBase + "E145",
	},

	// ============================================
	// CLI Errors (E150-E169)
	// ============================================

	"E150": {
		Category: CategoryCLI,
		Message:  "Invalid registration manifest",
		DocURL:   docBase + "E150",
	},
	"E151": {
		Category: CategoryCLI,
		Message:  "Registration manifest entry is incomplete",
		DocURL:   docBase + "E151",
	},
	"E160": {
		Category: CategoryCLI,
		Message:  "Cannot read page",
		DocURL:   docBase + "E160",
	},
	"E161": {
		Category: CategoryCLI,
		Message:  "Cannot write output",
		DocURL:   docBase + "E161",
	},
	"E162": {
		Category: CategoryCLI,
		Message:  "Invalid output location",
		Detail:   "Use a file path or s3://bucket/key.",
		DocURL:   docBase + "E162",
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
