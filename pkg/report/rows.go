package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
	"github.com/matzehuels/srgsearch/pkg/srg"
)

// ReadRows reads a row set from a result document, a JSON matrix or text.
func ReadRows(r io.Reader) (srg.RowSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '{':
		var d Document
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "decode document")
		}
		return d.RowSet()
	case trimmed[0] == '[':
		var m [][]int
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidFormat, err, "decode matrix")
		}
		rows, err := srg.RowSetFromInts(m)
		if err != nil {
			return nil, srgerrors.Wrap(srgerrors.ErrCodeInvalidRow, err, "matrix")
		}
		return rows, nil
	default:
		return readTextRows(trimmed)
	}
}

// ReadRowsFile reads a row set from path.
func ReadRowsFile(path string) (srg.RowSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, srgerrors.Wrap(srgerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadRows(f)
}

// readTextRows parses one row per line. Reading stops at the first line
// that is not a row, so the Gram section of a text report is skipped.
func readTextRows(data []byte) (srg.RowSet, error) {
	var rows srg.RowSet
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			if len(rows) > 0 && line == "" {
				break
			}
			continue
		}
		row, err := ParseRow(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, sc.Err()
}

// ParseRow parses "0 1 0 0 1", "0,1,0,0,1" or "01001".
func ParseRow(s string) (srg.Row, error) {
	if err := srgerrors.ValidateRowText(s); err != nil {
		return nil, err
	}
	var row srg.Row
	for _, r := range s {
		switch r {
		case '0':
			row = append(row, 0)
		case '1':
			row = append(row, 1)
		}
	}
	return row, nil
}
