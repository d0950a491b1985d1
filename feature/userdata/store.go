package userdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the name of the user data file.
const FileName = "torch_calculator_data.json"

// Document is the persisted user data: a JSON object of arbitrary values.
type Document map[string]any

// Store persists a single Document as an indented UTF-8 JSON file.
// Operations are serialized within the process; the file is not locked
// against other processes.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewStoreInDir creates a store for FileName inside dir.
func NewStoreInDir(dir string) *Store {
	return NewStore(filepath.Join(dir, FileName))
}

// Path returns the data file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored document, or an empty one if the file does not exist.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, wrapIO("read data file", err)
	}

	doc, err := decodeObject(raw)
	if err != nil {
		return nil, newError(ReasonParse, err)
	}
	if doc == nil {
		return nil, newError(ReasonParse, errors.New("data file does not hold a JSON object"))
	}
	return doc, nil
}

// Save shallow-merges the JSON object in partial into the stored document
// and rewrites the file. It returns the bytes that were written.
// A missing, unreadable or malformed existing file is treated as empty.
func (s *Store) Save(partial []byte) ([]byte, error) {
	update, err := decodeObject(partial)
	if err != nil || update == nil {
		return nil, newError(ReasonInvalidFormat, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := Document{}
	if raw, err := os.ReadFile(s.path); err == nil {
		if doc, err := decodeObject(raw); err == nil && doc != nil {
			existing = doc
		}
	}

	for k, v := range update {
		existing[k] = v
	}

	out, err := encode(existing)
	if err != nil {
		return nil, newError(ReasonIO, err)
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return nil, wrapIO("write data file", err)
	}
	return out, nil
}

// decodeObject parses raw as a single JSON object. Numbers are kept as
// json.Number so they round-trip without precision loss. A JSON null yields
// a nil document and no error.
func decodeObject(raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level object")
	}
	return doc, nil
}

// encode writes doc with two-space indentation, leaving non-ASCII and
// HTML-significant characters unescaped.
func encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
