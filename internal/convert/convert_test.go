// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/pdiddy/convert-engine/pkg/types"
)

// fakeConverter implements Converter for testing. It returns canned
// outputs or an error and records whether it ran.
type fakeConverter struct {
	outputs []string
	err     error
	panics  bool
	called  bool
}

func (f *fakeConverter) Convert(ctx context.Context, inputPath string) ([]string, error) {
	f.called = true
	if f.panics {
		panic("converter blew up")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.outputs, nil
}

func TestDispatchUnsupportedPair(t *testing.T) {
	d := NewDispatcher(types.ConvertConfig{}, nil)

	tests := []struct {
		src, tgt types.Format
	}{
		{types.FormatPDF, types.FormatExcel},
		{types.FormatPNG, types.FormatExcel},
		{types.FormatExcel, types.FormatPDF}, // nil office tool
	}

	for _, tt := range tests {
		outputs, err := d.Dispatch(context.Background(), "/in/file", tt.src, tt.tgt)
		if outputs != nil {
			t.Errorf("%s to %s: unexpected outputs %v", tt.src, tt.tgt, outputs)
		}
		var cerr *Error
		if !errors.As(err, &cerr) {
			t.Fatalf("%s to %s: error %v is not a *Error", tt.src, tt.tgt, err)
		}
		if cerr.Kind != FailUnsupported {
			t.Errorf("%s to %s: kind = %q, want %q", tt.src, tt.tgt, cerr.Kind, FailUnsupported)
		}
	}
}

func TestDispatchUnsupportedDoesNoIO(t *testing.T) {
	// The input path does not exist; an unsupported pair must fail before
	// anything tries to open it.
	d := NewDispatcher(types.ConvertConfig{}, nil)
	_, err := d.Dispatch(context.Background(), "/definitely/missing.pdf", types.FormatPDF, types.FormatExcel)

	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != FailUnsupported {
		t.Fatalf("expected unsupported failure, got %v", err)
	}
	if _, statErr := os.Stat("/definitely/missing.pdf"); !os.IsNotExist(statErr) {
		t.Skip("test path unexpectedly exists")
	}
}

func TestDispatchSuccess(t *testing.T) {
	fake := &fakeConverter{outputs: []string{"/out/a.pdf"}}
	d := &Dispatcher{converters: map[pair]Converter{}}
	d.Register(types.FormatPNG, types.FormatPDF, fake)

	outputs, err := d.Dispatch(context.Background(), "/in/a.png", types.FormatPNG, types.FormatPDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != "/out/a.pdf" {
		t.Errorf("outputs = %v", outputs)
	}
	if !fake.called {
		t.Error("converter was not invoked")
	}
}

func TestDispatchWrapsPlainErrors(t *testing.T) {
	fake := &fakeConverter{err: errors.New("disk full")}
	d := &Dispatcher{converters: map[pair]Converter{}}
	d.Register(types.FormatPNG, types.FormatPDF, fake)

	_, err := d.Dispatch(context.Background(), "/in/a.png", types.FormatPNG, types.FormatPDF)
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if cerr.Kind != FailIO {
		t.Errorf("kind = %q, want %q", cerr.Kind, FailIO)
	}
	if cerr.Path != "/in/a.png" {
		t.Errorf("path = %q", cerr.Path)
	}
}

func TestDispatchKeepsClassifiedErrors(t *testing.T) {
	fake := &fakeConverter{err: toolErr("/in/a.xlsx", errors.New("exit status 1"))}
	d := &Dispatcher{converters: map[pair]Converter{}}
	d.Register(types.FormatExcel, types.FormatPDF, fake)

	_, err := d.Dispatch(context.Background(), "/in/a.xlsx", types.FormatExcel, types.FormatPDF)
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if cerr.Kind != FailExternalTool {
		t.Errorf("kind = %q, want %q", cerr.Kind, FailExternalTool)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	fake := &fakeConverter{panics: true}
	d := &Dispatcher{converters: map[pair]Converter{}}
	d.Register(types.FormatPDF, types.FormatPNG, fake)

	outputs, err := d.Dispatch(context.Background(), "/in/a.pdf", types.FormatPDF, types.FormatPNG)
	if outputs != nil {
		t.Errorf("unexpected outputs %v", outputs)
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if cerr.Kind != FailIO {
		t.Errorf("kind = %q, want %q", cerr.Kind, FailIO)
	}
}

func TestNewDispatcherSupports(t *testing.T) {
	withTool := NewDispatcher(types.ConvertConfig{}, nil)
	if !withTool.Supports(types.FormatPDF, types.FormatPNG) {
		t.Error("pdf to png should be supported")
	}
	if !withTool.Supports(types.FormatPNG, types.FormatPDF) {
		t.Error("png to pdf should be supported")
	}
	if withTool.Supports(types.FormatExcel, types.FormatPDF) {
		t.Error("excel to pdf should be unsupported without an office tool")
	}
}
