package render

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestToPDFEmpty(t *testing.T) {
	if _, err := ToPDF(context.Background(), []byte("  ")); !srgerrors.Is(err, srgerrors.ErrCodeInvalidInput) {
		t.Errorf("ToPDF(empty) error = %v", err)
	}
}

func TestToPDF(t *testing.T) {
	if _, err := exec.LookPath(converter); err != nil {
		if _, err := ToPDF(context.Background(), []byte(square)); !srgerrors.Is(err, srgerrors.ErrCodeInvalidFormat) {
			t.Errorf("ToPDF without %s: error = %v", converter, err)
		}
		t.Skipf("%s not installed", converter)
	}

	pdf, err := ToPDF(context.Background(), []byte(square))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
