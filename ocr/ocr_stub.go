//go:build !ocr

// Package ocr recovers grids from scanned documents and photos using the
// Tesseract OCR engine.
//
// This is the stub used when the "ocr" build tag is not set: every
// operation returns ErrOCRNotEnabled, which lets an acquisition cascade
// carry the OCR method unconditionally and simply skip past it. To
// enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"

	"github.com/pricelens/pricelens/cascade"
)

// ErrOCRNotEnabled is returned when OCR operations are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("ocr support not enabled; rebuild with -tags ocr")

// Config holds OCR engine settings.
type Config struct {
	// Language selects tesseract language models, "+"-separated for
	// multiple (e.g. "eng+rus").
	// Default: "eng"
	Language string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{Language: "eng"}
}

// Engine is a stub that errors on every operation.
type Engine struct{}

// New returns an error indicating OCR support is not enabled.
func New() (*Engine, error) {
	return nil, ErrOCRNotEnabled
}

// NewWithConfig returns an error indicating OCR support is not enabled.
func NewWithConfig(config Config) (*Engine, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. It is safe to call on a nil engine.
func (e *Engine) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (e *Engine) RecognizeImage(data []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// RecognizeFile returns ErrOCRNotEnabled.
func (e *Engine) RecognizeFile(path string) (string, error) {
	return "", ErrOCRNotEnabled
}

// Method is a stub acquisition method whose Extract always fails with
// ErrOCRNotEnabled, so a cascade records the failure and moves on.
type Method struct{}

// NewMethod creates a stub OCR acquisition method.
func NewMethod() *Method {
	return &Method{}
}

// NewMethodWithConfig creates a stub OCR acquisition method.
func NewMethodWithConfig(config Config) *Method {
	return &Method{}
}

// Name identifies the method in cascade diagnostics.
func (m *Method) Name() string {
	return "ocr"
}

// Extract returns ErrOCRNotEnabled.
func (m *Method) Extract(path string) ([]cascade.Extraction, error) {
	return nil, ErrOCRNotEnabled
}

var _ cascade.Method = (*Method)(nil)
