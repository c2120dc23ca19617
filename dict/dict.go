// Package dict provides dictionary entry lookup and decoding using the
// Free Dictionary API.
package dict

import "strings"

// Entry represents a dictionary entry for a word.
type Entry struct {
	Word      string     `json:"word"`
	Phonetic  *string    `json:"phonetic"`
	Phonetics []Phonetic `json:"phonetics"`
	Origin    *string    `json:"origin"`
	Meanings  []Meaning  `json:"meanings"`
}

// Phonetic represents a pronunciation variant: display text and/or an
// audio URL. The audio URL is raw as received, not yet normalized.
type Phonetic struct {
	Text  *string `json:"text"`
	Audio *string `json:"audio"`
}

// Meaning represents a part of speech and its definitions.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms"`
	Antonyms     []string     `json:"antonyms"`
}

// Definition represents a single definition with an optional usage example.
type Definition struct {
	Definition string   `json:"definition"`
	Example    *string  `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// Key returns the lookup key for the entry: the lowercased word.
func (e Entry) Key() string {
	return strings.ToLower(e.Word)
}
