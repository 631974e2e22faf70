package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/convert"
)

type PretranslateOptions struct {
	Concurrency int
	// Overwrite replaces message strings that are already translated.
	Overwrite bool
}

// Pretranslate fills the message strings of entries with machine
// translations and returns the updated copy along with how many entries
// changed. Message ids flattened with the mapper's sentinel are sent as
// multi-line text and flattened back the same way.
func Pretranslate(
	ctx context.Context,
	translator Translator,
	entries []catalog.Entry,
	mapper convert.Mapper,
	opts PretranslateOptions,
) ([]catalog.Entry, int, error) {
	out := make([]catalog.Entry, len(entries))
	copy(out, entries)

	var items []Item
	for i, entry := range out {
		if entry.MessageID == "" {
			continue
		}
		if entry.Translated() && !opts.Overwrite {
			continue
		}
		items = append(items, Item{
			Index: i,
			Text:  strings.Join(mapper.Split(entry.MessageID), "\n"),
		})
	}
	if len(items) == 0 {
		return out, 0, nil
	}

	var (
		results []Result
		err     error
	)
	if ct, ok := translator.(ConcurrentTranslator); ok && opts.Concurrency != 1 {
		results, err = ct.TranslateWithConcurrency(ctx, items, opts.Concurrency)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return nil, 0, err
	}

	pending := make(map[int]bool, len(items))
	for _, item := range items {
		pending[item.Index] = true
	}

	changed := 0
	for _, r := range results {
		if !pending[r.Index] {
			return nil, 0, fmt.Errorf("translation for unrequested entry %d", r.Index+1)
		}
		delete(pending, r.Index)

		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		out[r.Index].MessageString = mapper.Join(mapper.Split(text))
		changed++
	}
	if len(pending) > 0 {
		return nil, 0, fmt.Errorf("%d entries came back without a translation", len(pending))
	}

	return out, changed, nil
}
