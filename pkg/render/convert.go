package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	srgerrors "github.com/matzehuels/srgsearch/pkg/errors"
)

// converter is the external tool used for vector conversion.
const converter = "rsvg-convert"

// ToPDF converts an SVG drawing to PDF with rsvg-convert from librsvg.
// The tool must be on PATH: apt install librsvg2-bin or brew install librsvg.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if len(bytes.TrimSpace(svg)) == 0 {
		return nil, srgerrors.New(srgerrors.ErrCodeInvalidInput, "empty SVG")
	}
	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, srgerrors.New(srgerrors.ErrCodeInvalidFormat,
			"pdf output needs %s (apt install librsvg2-bin, brew install librsvg)", converter)
	}

	cmd := exec.CommandContext(ctx, path, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", converter, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
