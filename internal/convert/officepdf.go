// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pdiddy/convert-engine/internal/office"
)

// SpreadsheetConverter converts spreadsheets to PDF through the external
// office tool. The tool writes <base>.pdf into the input's directory and
// overwrites an existing file of that name; the output is not uniquified
// because the naming is owned by the external process.
type SpreadsheetConverter struct {
	Tool *office.Tool
}

func (s *SpreadsheetConverter) Convert(ctx context.Context, inputPath string) ([]string, error) {
	outDir := filepath.Dir(inputPath)
	if err := s.Tool.ConvertToPDF(ctx, inputPath, outDir); err != nil {
		return nil, toolErr(inputPath, err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return []string{filepath.Join(outDir, base+".pdf")}, nil
}
