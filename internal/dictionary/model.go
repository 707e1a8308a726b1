package dictionary

import (
	"encoding/json"
	"time"
)

// UnknownPartOfSpeech is shown when a sense has no part of speech.
const UnknownPartOfSpeech = "unknown"

// PronunciationAll is the pronunciation variant shown next to the headword.
const PronunciationAll = "all"

// Relation is a kind of lexical relation between a sense and other words.
type Relation string

const (
	Antonyms  Relation = "antonyms"
	Synonyms  Relation = "synonyms"
	Hypernyms Relation = "hypernyms"
	Hyponyms  Relation = "hyponyms"
	Holonyms  Relation = "holonyms"
)

// AllRelations is the order in which relations are rendered.
var AllRelations = []Relation{Antonyms, Synonyms, Hypernyms, Hyponyms, Holonyms}

// LexicalEntry is one sense of a word.
// A relation missing from Relations means the source had no data for it,
// which is different from an empty list.
type LexicalEntry struct {
	PartOfSpeech string
	Definition   string
	Relations    map[Relation][]string
}

// Relation returns the words for a relation and whether the source provided the list at all.
func (e LexicalEntry) Relation(relation Relation) ([]string, bool) {
	words, ok := e.Relations[relation]
	return words, ok
}

// WordRecord is a parsed lookup result.
type WordRecord struct {
	Word          string
	Pronunciation map[string]string
	Entries       []LexicalEntry
}

// CacheEntry is a cached response as stored by a Store.
type CacheEntry struct {
	Key       LookupKey       `db:"word" yaml:"key"`
	Response  json.RawMessage `db:"response" yaml:"response"`
	UpdatedAt time.Time       `db:"updated_at" yaml:"updated_at"`
}

// MarshalYAML serializes CacheEntry with Response as a JSON string.
func (e CacheEntry) MarshalYAML() (interface{}, error) {
	return &struct {
		Key       string    `yaml:"key"`
		Response  string    `yaml:"response"`
		UpdatedAt time.Time `yaml:"updated_at"`
	}{
		Key:       e.Key.String(),
		Response:  string(e.Response),
		UpdatedAt: e.UpdatedAt,
	}, nil
}
