package mock

import "github.com/pkorzen/draftpipe"

var _ draftpipe.Converter = (*Converter)(nil)

// Converter is a mock implementation of draftpipe.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
