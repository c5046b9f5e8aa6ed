package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Simplici0/printquote/internal/quote"
)

// readDocument decodes a YAML or JSON quote document from path, or from
// stdin when path is "-", and validates it.
func readDocument(path string, stdin io.Reader) (quote.Document, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return quote.Document{}, fmt.Errorf("open quote file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var doc quote.Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return quote.Document{}, errors.New("quote file is empty")
		}
		return quote.Document{}, fmt.Errorf("decode quote file: %w", err)
	}

	if err := quote.Validate(doc); err != nil {
		return quote.Document{}, err
	}
	return doc, nil
}
