// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// jpegQuality is the encoding quality for the intermediate page image.
const jpegQuality = 95

// ImageEmbedder converts a raster image into a single-page PDF written
// next to the input as <base>.pdf (uniquified). The image is flattened to
// 3-channel RGB over white before embedding; the page is sized so the
// image prints at DPI.
type ImageEmbedder struct {
	DPI int
}

func (e *ImageEmbedder) Convert(ctx context.Context, inputPath string) ([]string, error) {
	img, err := imaging.Open(inputPath)
	if err != nil {
		return nil, ioErr(inputPath, fmt.Errorf("decoding image: %w", err))
	}

	// Flatten any alpha channel over a white background.
	bounds := img.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, ioErr(inputPath, fmt.Errorf("encoding page image: %w", err))
	}

	// Page dimensions in points so the image renders at the target DPI.
	wPt := float64(bounds.Dx()) * 72.0 / float64(e.DPI)
	hPt := float64(bounds.Dy()) * 72.0 / float64(e.DPI)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.AddPage()
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("page", opts, &buf)
	pdf.ImageOptions("page", 0, 0, wPt, hPt, false, opts, 0, "")

	out := UniquePath(strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".pdf")
	if err := pdf.OutputFileAndClose(out); err != nil {
		return nil, ioErr(inputPath, fmt.Errorf("writing PDF: %w", err))
	}
	return []string{out}, nil
}
