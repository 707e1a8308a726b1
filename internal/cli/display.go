package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/word/internal/dictionary"
	"github.com/fatih/color"
)

const noRelation = "(None)"

// DisplayOptions selects what is printed for a looked-up word.
type DisplayOptions struct {
	Antonym  bool
	Synonym  bool
	Hypernym bool
	Hyponym  bool
	Holonym  bool
	// ShowAll prints every relation regardless of the flags above.
	ShowAll bool
	// RawJSON prints the response as received instead of parsing it.
	RawJSON bool
	Verbose bool
}

// Shows reports whether a relation is printed under these options.
func (o DisplayOptions) Shows(relation dictionary.Relation) bool {
	if o.ShowAll {
		return true
	}
	switch relation {
	case dictionary.Antonyms:
		return o.Antonym
	case dictionary.Synonyms:
		return o.Synonym
	case dictionary.Hypernyms:
		return o.Hypernym
	case dictionary.Hyponyms:
		return o.Hyponym
	case dictionary.Holonyms:
		return o.Holonym
	}
	return false
}

// Presenter writes lookup results.
type Presenter struct {
	options      DisplayOptions
	stdoutWriter io.Writer
	bold         *color.Color
}

func NewPresenter(stdoutWriter io.Writer, options DisplayOptions) *Presenter {
	return &Presenter{
		options:      options,
		stdoutWriter: stdoutWriter,
		bold:         color.New(color.Bold),
	}
}

// Raw writes the payload unmodified.
func (p *Presenter) Raw(payload string) error {
	if _, err := fmt.Fprintln(p.stdoutWriter, payload); err != nil {
		return fmt.Errorf("fmt.Fprintln > %w", err)
	}
	return nil
}

// Show writes the headword and every sense with the selected relations.
func (p *Presenter) Show(record dictionary.WordRecord) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s |%s|\n", p.bold.Sprint(record.Word), record.Pronunciation[dictionary.PronunciationAll]))

	for i, entry := range record.Entries {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("(%s) %s\n", entry.PartOfSpeech, entry.Definition))
		for _, relation := range dictionary.AllRelations {
			if !p.options.Shows(relation) {
				continue
			}
			builder.WriteString(fmt.Sprintf("   %s: %s\n", relation, formatRelation(entry, relation)))
		}
	}

	if _, err := io.WriteString(p.stdoutWriter, builder.String()); err != nil {
		return fmt.Errorf("io.WriteString > %w", err)
	}
	return nil
}

func formatRelation(entry dictionary.LexicalEntry, relation dictionary.Relation) string {
	words, ok := entry.Relation(relation)
	if !ok {
		return noRelation
	}
	return strings.Join(words, ", ")
}
