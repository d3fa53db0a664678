package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration Errors (E120-E139)

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid backtension.json",
		Detail:   "The configuration file could not be parsed as JSON.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Unknown log level",
		Detail:   "logLevel must be one of debug, info, warn or error.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No backtension.json was found.",
	},
	"E124": {
		Category: CategoryConfig,
		Message:  "Configuration could not be written",
		Detail:   "backtension.json could not be encoded or written to disk.",
	},

	// CLI Errors (E140-E159)

	"E140": {
		Category: CategoryCLI,
		Message:  "Missing required input",
		Detail:   "The command needs an input that was neither passed as a flag nor set in backtension.json.",
	},
	"E141": {
		Category: CategoryDocument,
		Message:  "Document not found",
		Detail:   "The HTML document could not be opened.",
	},
	"E142": {
		Category: CategoryDocument,
		Message:  "Document could not be parsed",
		Detail:   "The HTML document could not be parsed.",
	},
	"E143": {
		Category: CategoryRegions,
		Message:  "Region file is invalid",
		Detail:   "A region file is a mapping from region name to a selector or to a nested mapping of the same shape.",
	},
	"E144": {
		Category: CategoryRegions,
		Message:  "Region file not found",
		Detail:   "The region descriptor file could not be opened.",
	},
	"E145": {
		Category: CategoryCLI,
		Message:  "Root selector matched nothing",
		Detail:   "The --root selector did not match any element in the document.",
	},
	"E146": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The debug server stopped with an error.",
	},
	"E147": {
		Category: CategoryCLI,
		Message:  "Trace exporter could not be created",
		Detail:   "The OTLP endpoint given by --otlp-endpoint or OTEL_EXPORTER_OTLP_ENDPOINT was rejected.",
	},
	"E148": {
		Category: CategoryCLI,
		Message:  "Directory could not be created",
		Detail:   "The target directory for backtension.json does not exist and could not be created.",
	},
	"E149": {
		Category: CategoryCLI,
		Message:  "Command failed",
		Detail:   "The command line could not be run as given.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
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
