//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	engine, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got: %v", err)
	}
	if engine != nil {
		t.Error("expected nil engine when OCR is disabled")
	}
}

func TestCloseOnNilEngine(t *testing.T) {
	var engine *Engine
	if err := engine.Close(); err != nil {
		t.Errorf("Close on nil engine should not error: %v", err)
	}
}

func TestMethodExtractFails(t *testing.T) {
	m := NewMethod()
	if m.Name() != "ocr" {
		t.Errorf("name = %q, want ocr", m.Name())
	}
	if _, err := m.Extract("scan.pdf"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got: %v", err)
	}
}
