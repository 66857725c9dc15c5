// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Format identifies a file format group selectable as a conversion source
// or target. The "png" format covers the common raster image extensions,
// not just .png files.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatPNG   Format = "png"
	FormatExcel Format = "excel"
)

// formatExtensions maps each source format to the file extensions it
// matches during discovery. All extensions are lower-case with the dot.
var formatExtensions = map[Format][]string{
	FormatPDF:   {".pdf"},
	FormatPNG:   {".png", ".jpg", ".jpeg"},
	FormatExcel: {".xls", ".xlsx"},
}

// formatTargets maps each source format to its valid conversion targets.
var formatTargets = map[Format][]Format{
	FormatPDF:   {FormatPNG},
	FormatPNG:   {FormatPDF},
	FormatExcel: {FormatPDF},
}

// ParseFormat normalizes a user-supplied format name. It accepts any case
// and returns an error listing the valid names when the input is unknown.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formatExtensions[f]; !ok {
		return "", fmt.Errorf("unknown format %q (valid: pdf, png, excel)", s)
	}
	return f, nil
}

// Extensions returns the file extensions discovered for this source format.
func (f Format) Extensions() []string {
	exts := formatExtensions[f]
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Matches reports whether ext (with or without leading dot, any case)
// belongs to this format's extension set.
func (f Format) Matches(ext string) bool {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, e := range formatExtensions[f] {
		if e == ext {
			return true
		}
	}
	return false
}

// Targets returns the valid target formats for this source format.
func (f Format) Targets() []Format {
	ts := formatTargets[f]
	out := make([]Format, len(ts))
	copy(out, ts)
	return out
}

// Formats returns all selectable source formats in display order.
func Formats() []Format {
	return []Format{FormatPDF, FormatPNG, FormatExcel}
}
