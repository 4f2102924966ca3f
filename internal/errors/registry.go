package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

const docBase = "https://github.com/vango-dev/reactive/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (R001-R099)
	// ============================================

	"R001": {
		Category:   CategoryRuntime,
		Message:    "Computed signal is read only",
		Suggestion: "Set the signals the derivation reads instead of the computed signal.",
		DocURL:     docBase + "r001",
	},
	"R002": {
		Category:   CategoryRuntime,
		Message:    "Effect has nothing to watch",
		Suggestion: "Pass at least one signal to CreateEffect.",
		DocURL:     docBase + "r002",
	},
	"R003": {
		Category:   CategoryRuntime,
		Message:    "Effect watches a nil signal",
		Suggestion: "Create every watched signal before registering the effect.",
		DocURL:     docBase + "r003",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryConfig,
		Message:    "Config file not found",
		Suggestion: "Create reactive.json or run without --config to use defaults.",
		DocURL:     docBase + "c001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		DocURL:   docBase + "c002",
	},
	"C003": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		DocURL:   docBase + "c003",
	},
	"C004": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		DocURL:   docBase + "c004",
	},

	// ============================================
	// Scenario Errors (S001-S099)
	// ============================================

	"S001": {
		Category: CategoryScenario,
		Message:  "Invalid scenario file",
		DocURL:   docBase + "s001",
	},
	"S002": {
		Category:   CategoryScenario,
		Message:    "Unknown name",
		Suggestion: "Declare the signal, computed signal or effect before referring to it.",
		DocURL:     docBase + "s002",
	},
	"S003": {
		Category: CategoryScenario,
		Message:  "Duplicate name",
		DocURL:   docBase + "s003",
	},
	"S004": {
		Category:   CategoryScenario,
		Message:    "Unknown operation",
		Suggestion: "Use one of: sum, product, max, min, neg, copy.",
		DocURL:     docBase + "s004",
	},
	"S005": {
		Category: CategoryScenario,
		Message:  "Expectation failed",
		DocURL:   docBase + "s005",
	},
	"S006": {
		Category: CategoryScenario,
		Message:  "Invalid step",
		DocURL:   docBase + "s006",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
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
