package inspect

import (
	"os"

	"github.com/vango-dev/backtension/internal/errors"
	"github.com/vango-dev/backtension/pkg/dom/htmldom"
)

// LoadDocument parses the HTML file at path.
func LoadDocument(path string) (*htmldom.Document, error) {
	if path == "" {
		return nil, errors.New("E140").
			WithDetail("No document given").
			WithSuggestion("Pass --html or set \"document\" in backtension.json")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E141").WithLocation(path, 0, 0).Wrap(err)
	}
	defer f.Close()

	doc, err := htmldom.Parse(f)
	if err != nil {
		return nil, errors.New("E142").WithLocation(path, 0, 0).Wrap(err)
	}
	return doc, nil
}
