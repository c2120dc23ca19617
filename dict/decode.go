package dict

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeEntry converts an untyped JSON object into an Entry. Missing or
// wrong-typed fields never fail the decode: required strings default to "",
// optional strings to nil, and lists to empty. Present string values are
// trimmed; an optional string that is empty after trimming is treated as
// absent.
func DecodeEntry(raw map[string]any) Entry {
	return Entry{
		Word:      requiredString(raw, "word"),
		Phonetic:  optionalString(raw, "phonetic"),
		Phonetics: decodePhonetics(raw["phonetics"]),
		Origin:    optionalString(raw, "origin"),
		Meanings:  decodeMeanings(raw["meanings"]),
	}
}

// DecodeEntryJSON decodes a serialized entry. It fails only if the data is
// not a JSON object; field-level problems are absorbed by DecodeEntry.
func DecodeEntryJSON(data []byte) (Entry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Entry{}, fmt.Errorf("parsing entry: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return Entry{}, fmt.Errorf("parsing entry: not a JSON object")
	}
	return DecodeEntry(obj), nil
}

// EncodeJSON serializes the entry. Absent optional fields are written as
// explicit nulls so that decoding the result reproduces an equal Entry.
func (e Entry) EncodeJSON() ([]byte, error) {
	return json.Marshal(e)
}

func decodePhonetics(v any) []Phonetic {
	list, ok := v.([]any)
	phonetics := []Phonetic{}
	if !ok {
		return phonetics
	}
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			continue // drop malformed elements
		}
		phonetics = append(phonetics, Phonetic{
			Text:  optionalString(obj, "text"),
			Audio: optionalString(obj, "audio"),
		})
	}
	return phonetics
}

func decodeMeanings(v any) []Meaning {
	list, ok := v.([]any)
	meanings := []Meaning{}
	if !ok {
		return meanings
	}
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		meanings = append(meanings, Meaning{
			PartOfSpeech: requiredString(obj, "partOfSpeech"),
			Definitions:  decodeDefinitions(obj["definitions"]),
			Synonyms:     stringList(obj["synonyms"]),
			Antonyms:     stringList(obj["antonyms"]),
		})
	}
	return meanings
}

func decodeDefinitions(v any) []Definition {
	list, ok := v.([]any)
	defs := []Definition{}
	if !ok {
		return defs
	}
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		defs = append(defs, Definition{
			Definition: requiredString(obj, "definition"),
			Example:    optionalString(obj, "example"),
			Synonyms:   stringList(obj["synonyms"]),
			Antonyms:   stringList(obj["antonyms"]),
		})
	}
	return defs
}

// requiredString reads a string field, defaulting to "" when missing or
// wrong-typed. The value is trimmed of surrounding whitespace.
func requiredString(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// optionalString reads a string field, returning nil when missing,
// wrong-typed, or empty after trimming.
func optionalString(obj map[string]any, key string) *string {
	s, ok := obj[key].(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func stringList(v any) []string {
	list, ok := v.([]any)
	out := []string{}
	if !ok {
		return out
	}
	for _, el := range list {
		s, ok := el.(string)
		if !ok {
			continue
		}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}
