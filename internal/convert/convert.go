package convert

import (
	"fmt"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/subtitle"
)

// Result is a converted file together with its suggested name.
type Result struct {
	Name string
	Data []byte
}

// ConvertFile converts a whole file named name. An unregistered extension
// yields ErrUnsupportedFormat before any converter runs.
func (r *Registry) ConvertFile(name string, data []byte) (Result, error) {
	stem, ext := SplitExt(name)
	strategy, ok := r.Lookup(ext)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	out, err := strategy.Convert(data)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: stem + strategy.Extension, Data: out}, nil
}

// Entries reads the catalog entries a subtitle or catalog file maps to.
func (r *Registry) Entries(name string, data []byte) ([]catalog.Entry, error) {
	_, ext := SplitExt(name)
	switch ext {
	case subtitle.Extension:
		cues, err := subtitle.Parse(data)
		if err != nil {
			return nil, malformed(err)
		}
		entries := make([]catalog.Entry, len(cues))
		for i, cue := range cues {
			entries[i] = r.mapper.Encode(cue)
		}
		return entries, nil
	case catalog.Extension:
		entries, err := catalog.Parse(data)
		if err != nil {
			return nil, malformed(err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: %q has no catalog entries", ErrUnsupportedFormat, ext)
	}
}
