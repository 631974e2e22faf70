// Package convert maps subtitle cues to translation-catalog entries and
// dispatches whole files, including zip archives of them, by extension.
package convert

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/logging"
	"github.com/mgpai22/subpo/internal/subtitle"
)

const (
	ArchiveExtension = ".zip"
	ConvertedSuffix  = ".converted"
)

// Converter turns one fully buffered input into one fully buffered output.
type Converter func(data []byte) ([]byte, error)

// Strategy is registered under an input extension.
type Strategy struct {
	Extension   string // output extension
	Description string
	Convert     Converter
}

// Options configures a Registry.
type Options struct {
	Sentinel string
	Logger   *logging.Logger
}

// Registry maps input extensions to strategies. It is never mutated after
// NewRegistry returns, so concurrent use needs no locking.
type Registry struct {
	strategies map[string]Strategy
	mapper     Mapper
	logger     *logging.Logger
}

func NewRegistry(opts Options) *Registry {
	r := &Registry{
		mapper: NewMapper(opts.Sentinel),
		logger: opts.Logger,
	}
	if r.logger == nil {
		r.logger = logging.Nop()
	}

	r.strategies = map[string]Strategy{
		subtitle.Extension: {
			Extension:   catalog.Extension,
			Description: "SubRip subtitles to a translation catalog",
			Convert:     r.subtitleToCatalog,
		},
		catalog.Extension: {
			Extension:   subtitle.Extension,
			Description: "translation catalog back to SubRip subtitles",
			Convert:     r.catalogToSubtitle,
		},
		ArchiveExtension: {
			Extension:   ConvertedSuffix + ArchiveExtension,
			Description: "every supported file inside a zip archive",
			Convert:     r.convertArchive,
		},
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry with default options. It is the
// entry point for library callers; the CLI builds its own registry so the
// configured sentinel and run logger apply.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(Options{})
	})
	return defaultRegistry
}

// Lookup finds the strategy for an extension, including its leading dot.
// Matching is exact and case-sensitive.
func (r *Registry) Lookup(ext string) (Strategy, bool) {
	strategy, ok := r.strategies[ext]
	return strategy, ok
}

// Extensions lists the supported input extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.strategies))
	for ext := range r.strategies {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Registration pairs an input extension with its strategy.
type Registration struct {
	Input string
	Strategy
}

// Strategies lists every registration ordered by input extension.
func (r *Registry) Strategies() []Registration {
	exts := r.Extensions()
	out := make([]Registration, len(exts))
	for i, ext := range exts {
		out[i] = Registration{Input: ext, Strategy: r.strategies[ext]}
	}
	return out
}

func (r *Registry) Mapper() Mapper {
	return r.mapper
}

func (r *Registry) subtitleToCatalog(data []byte) ([]byte, error) {
	cues, err := subtitle.Parse(data)
	if err != nil {
		return nil, malformed(err)
	}

	var buf bytes.Buffer
	for _, cue := range cues {
		buf.Write(catalog.Marshal(r.mapper.Encode(cue)))
	}
	return buf.Bytes(), nil
}

func (r *Registry) catalogToSubtitle(data []byte) ([]byte, error) {
	entries, err := catalog.Parse(data)
	if err != nil {
		return nil, malformed(err)
	}

	var buf bytes.Buffer
	for i, entry := range entries {
		cue, err := r.mapper.Decode(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		buf.Write(subtitle.Marshal(cue))
	}
	return buf.Bytes(), nil
}

// SplitExt splits a slash-separated name into stem and extension at the last
// dot of its final element. Leading dots of that element never start an
// extension, so ".hidden" has none.
func SplitExt(name string) (string, string) {
	base := strings.LastIndex(name, "/") + 1
	dot := strings.LastIndex(name, ".")
	if dot <= base {
		return name, ""
	}
	if strings.Trim(name[base:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}
