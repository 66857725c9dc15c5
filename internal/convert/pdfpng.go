// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PageRenderer converts a PDF into one PNG per page, rendered at DPI and
// written next to the input as <base>_page<N>.png (uniquified per page).
type PageRenderer struct {
	DPI int
}

func (r *PageRenderer) Convert(ctx context.Context, inputPath string) ([]string, error) {
	doc, err := fitz.New(inputPath)
	if err != nil {
		return nil, ioErr(inputPath, fmt.Errorf("opening PDF: %w", err))
	}
	defer doc.Close()

	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	outputs := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, ioErr(inputPath, err)
		}

		img, err := doc.ImageDPI(n, float64(r.DPI))
		if err != nil {
			return nil, ioErr(inputPath, fmt.Errorf("rendering page %d: %w", n+1, err))
		}

		out := UniquePath(fmt.Sprintf("%s_page%d.png", base, n+1))
		f, err := os.Create(out)
		if err != nil {
			return nil, ioErr(inputPath, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, ioErr(inputPath, fmt.Errorf("encoding page %d: %w", n+1, err))
		}
		if err := f.Close(); err != nil {
			return nil, ioErr(inputPath, err)
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}
