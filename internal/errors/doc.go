// Package errors provides structured, actionable error messages for the
// backtension command and configuration loader.
//
// The view core never returns errors: absent matches and unresolvable
// handlers are no-ops. Errors only surface at the edges, when a config
// file, document or region file can't be read.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E120") that maps to a category, a
// short message and a detailed explanation.
//
// # Usage
//
//	err := errors.New("E143").
//	    WithLocation("regions.yaml", 4, 0).
//	    WithSuggestion("Nested regions must be mappings of name to selector").
//	    Wrap(yamlErr)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E143: Region file is invalid
//	//
//	//   regions.yaml:4
//	//
//	//        3 │ body:
//	//   →    4 │   - left
//	//        5 │ footer: .ft
//	//
//	//   Hint: Nested regions must be mappings of name to selector
//
// Fprint and PrintError render any error in one of three styles:
// StylePretty (Format), StyleCompact (FormatCompact) for logs and pipes,
// and StyleJSON (FormatJSON) for tooling.
package errors
