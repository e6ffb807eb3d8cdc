package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

// Document is the JSON form of a search result.
type Document struct {
	ID        string    `json:"id"`
	Key       string    `json:"key,omitempty"`
	Spec      srg.Spec  `json:"spec"`
	Rows      [][]int   `json:"rows"`
	Gram      [][]int   `json:"gram"`
	Status    string    `json:"status"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Seed      uint64    `json:"seed"`
	Stats     srg.Stats `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDocument converts a result into a document with a fresh id.
func NewDocument(res *srg.Result) *Document {
	gram := make([][]int, len(res.Gram))
	for i, r := range res.Gram {
		gram[i] = append([]int(nil), r...)
	}
	return &Document{
		ID:        uuid.NewString(),
		Spec:      res.Spec,
		Rows:      res.Rows.Ints(),
		Gram:      gram,
		Status:    res.State.String(),
		ElapsedMS: res.Elapsed.Milliseconds(),
		Seed:      res.Seed,
		Stats:     res.Stats,
		CreatedAt: time.Now().UTC(),
	}
}

// RowSet returns the document rows.
func (d *Document) RowSet() (srg.RowSet, error) {
	rows, err := srg.RowSetFromInts(d.Rows)
	if err != nil {
		return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidRow, err, "document %s", d.ID)
	}
	return rows, nil
}

// Complete reports whether the document holds a full adjacency matrix.
func (d *Document) Complete() bool {
	return d.Status == srg.Complete.String() && len(d.Rows) == d.Spec.N
}

// Validate checks the rows against the document parameters and recomputes the Gram matrix.
func (d *Document) Validate() error {
	if _, err := uuid.Parse(d.ID); err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "document id %q", d.ID)
	}
	rows, err := d.RowSet()
	if err != nil {
		return err
	}
	if err := d.Spec.Validate(); err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeSpecViolation, err, "document %s", d.ID)
	}
	if err := srg.ValidateRows(d.Spec, rows); err != nil {
		return srgerrors.Wrap(srgerrors.ErrCodeSpecViolation, err, "document %s", d.ID)
	}
	return nil
}

// Marshal encodes the document as indented JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// WriteJSON encodes the document and writes it to w.
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the document to a JSON file at path.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// ReadJSON decodes and validates a document.
func ReadJSON(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "decode document")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Unmarshal decodes and validates a document held in memory.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "decode document")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ImportJSON reads a document file.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, srgerrors.Wrap(srgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
