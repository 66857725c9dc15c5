// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements per-format-pair file conversion behind a
// single dispatch boundary. Converters for each supported pair are
// registered on a Dispatcher; unsupported pairs fail without touching the
// filesystem, and every converter error or panic is returned as a
// classified failure rather than propagated.
package convert

import (
	"context"
	"fmt"

	"github.com/pdiddy/convert-engine/internal/office"
	"github.com/pdiddy/convert-engine/pkg/types"
)

// DefaultDPI is the render/encode resolution used when none is configured.
const DefaultDPI = 300

// Converter transforms one input file into one or more output files and
// returns the paths it created.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (outputs []string, err error)
}

type pair struct {
	src, tgt types.Format
}

// Dispatcher routes a file to the converter registered for the job's
// format pair.
type Dispatcher struct {
	converters map[pair]Converter
}

// NewDispatcher builds a Dispatcher with the built-in converters. tool may
// be nil when the spreadsheet path is not needed; the excel source is then
// simply not registered.
func NewDispatcher(cfg types.ConvertConfig, tool *office.Tool) *Dispatcher {
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	d := &Dispatcher{converters: make(map[pair]Converter)}
	d.Register(types.FormatPDF, types.FormatPNG, &PageRenderer{DPI: dpi})
	d.Register(types.FormatPNG, types.FormatPDF, &ImageEmbedder{DPI: dpi})
	if tool != nil {
		d.Register(types.FormatExcel, types.FormatPDF, &SpreadsheetConverter{Tool: tool})
	}
	return d
}

// Register installs c as the converter for the (src, tgt) pair, replacing
// any existing registration.
func (d *Dispatcher) Register(src, tgt types.Format, c Converter) {
	d.converters[pair{src, tgt}] = c
}

// Supports reports whether a converter is registered for (src, tgt).
func (d *Dispatcher) Supports(src, tgt types.Format) bool {
	_, ok := d.converters[pair{src, tgt}]
	return ok
}

// Dispatch converts inputPath according to the (src, tgt) pair. Every
// failure comes back as a *Error; a panic inside a converter is recovered
// and reported the same way. An unsupported pair fails before any I/O.
func (d *Dispatcher) Dispatch(ctx context.Context, inputPath string, src, tgt types.Format) (outputs []string, err error) {
	c, ok := d.converters[pair{src, tgt}]
	if !ok {
		return nil, &Error{
			Kind: FailUnsupported,
			Path: inputPath,
			Err:  fmt.Errorf("conversion %s to %s is not supported", src, tgt),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			outputs = nil
			err = ioErr(inputPath, fmt.Errorf("panic: %v", r))
		}
	}()

	outputs, err = c.Convert(ctx, inputPath)
	if err != nil {
		if _, ok := err.(*Error); !ok {
			err = ioErr(inputPath, err)
		}
		return nil, err
	}
	return outputs, nil
}
