// Package schema holds the JSON schemas model output must conform to.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

type Kind string

const (
	Listings  Kind = "listings"
	Valuation Kind = "valuation"
)

func (k Kind) file() string {
	return string(k) + ".schema.json"
}

var (
	ErrSchemaViolation = errors.New("document does not match schema")
	ErrUnknownKind     = errors.New("unknown schema kind")
)

//go:embed *.schema.json
var files embed.FS

var compiled = mustCompile(Listings, Valuation)

func mustCompile(kinds ...Kind) map[Kind]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	for _, k := range kinds {
		data, err := files.ReadFile(k.file())
		if err != nil {
			panic(fmt.Sprintf("schema %s missing: %v", k, err))
		}
		if err := compiler.AddResource(k.file(), bytes.NewReader(data)); err != nil {
			panic(fmt.Sprintf("failed to add schema %s: %v", k, err))
		}
	}

	out := make(map[Kind]*jsonschema.Schema, len(kinds))
	for _, k := range kinds {
		s, err := compiler.Compile(k.file())
		if err != nil {
			panic(fmt.Sprintf("failed to compile schema %s: %v", k, err))
		}
		out[k] = s
	}

	return out
}

// Describe returns the raw schema document, used verbatim inside prompts.
func Describe(kind Kind) (string, error) {
	data, err := files.ReadFile(kind.file())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return string(data), nil
}

// Validate checks an already decoded JSON value (as produced by encoding/json
// into an interface{}) against the schema of kind.
func Validate(kind Kind, doc any) error {
	s, ok := compiled[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	return nil
}

// Decode parses payload, validates it against kind and only then fills dst
// from the validated tree. Keys must match the json tags exactly, the same
// way the schema matched them. A document that fails validation leaves dst
// untouched.
func Decode(kind Kind, payload []byte, dst any) error {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	if err := Validate(kind, doc); err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
		Result: dst,
	})
	if err != nil {
		return fmt.Errorf("failed to build %s decoder: %w", kind, err)
	}

	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}

	return nil
}
