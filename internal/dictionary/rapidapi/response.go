// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/at-ishikawa/word/internal/dictionary"
)

type Response struct {
	Word          string        `json:"word"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

// Pronunciation is keyed by variant such as "all", "noun" or "verb".
type Pronunciation map[string]string

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = nil
	case len(data) > 0 && data[0] == '{':
		var variants map[string]string
		if err := json.Unmarshal(data, &variants); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		*p = variants
	default:
		var all string
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		*p = Pronunciation{dictionary.PronunciationAll: all}
	}
	return nil
}

// Result is one sense. Nil slices are lists the API did not send.
type Result struct {
	Definition   *string  `json:"definition"`
	PartOfSpeech *string  `json:"partOfSpeech"`
	Antonyms     []string `json:"antonyms"`
	Synonyms     []string `json:"synonyms"`
	TypeOf       []string `json:"typeOf"`
	HasTypes     []string `json:"hasTypes"`
	PartOf       []string `json:"partOf"`
}

func (r Result) relations() map[dictionary.Relation][]string {
	relations := make(map[dictionary.Relation][]string)
	for relation, words := range map[dictionary.Relation][]string{
		dictionary.Antonyms:  r.Antonyms,
		dictionary.Synonyms:  r.Synonyms,
		dictionary.Hypernyms: r.TypeOf,
		dictionary.Hyponyms:  r.HasTypes,
		dictionary.Holonyms:  r.PartOf,
	} {
		if words != nil {
			relations[relation] = words
		}
	}
	return relations
}

// Parse converts a WordsAPI response body into a WordRecord.
func Parse(payload string) (dictionary.WordRecord, error) {
	var response *Response
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		return dictionary.WordRecord{}, &dictionary.ParseError{Err: fmt.Errorf("json.Unmarshal > %w", err)}
	}
	if response == nil {
		return dictionary.WordRecord{}, &dictionary.ParseError{Err: errors.New("response is null")}
	}
	if response.Word == "" {
		return dictionary.WordRecord{}, &dictionary.ParseError{Err: errors.New("word is missing")}
	}

	entries := make([]dictionary.LexicalEntry, 0, len(response.Results))
	for i, result := range response.Results {
		if result.Definition == nil {
			return dictionary.WordRecord{}, &dictionary.ParseError{Err: fmt.Errorf("results[%d]: definition is missing", i)}
		}
		partOfSpeech := dictionary.UnknownPartOfSpeech
		if result.PartOfSpeech != nil {
			partOfSpeech = *result.PartOfSpeech
		}
		entries = append(entries, dictionary.LexicalEntry{
			PartOfSpeech: partOfSpeech,
			Definition:   *result.Definition,
			Relations:    result.relations(),
		})
	}

	return dictionary.WordRecord{
		Word:          response.Word,
		Pronunciation: response.Pronunciation,
		Entries:       entries,
	}, nil
}
