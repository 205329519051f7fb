//go:build ocr

// Package ocr recovers grids from scanned documents and photos using the
// Tesseract OCR engine via gosseract. PDF pages are rasterized with
// go-fitz before recognition. Tesseract must be installed on the system.
// On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// The package only compiles with the "ocr" build tag; without it a stub
// is used whose operations return ErrOCRNotEnabled.
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"

	// Register decoders for scan formats tesseract sources commonly use.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/pricelens/pricelens/cascade"
)

// ErrOCRNotEnabled is returned by the stub build only. It is declared in
// both builds so callers can test for it unconditionally.
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

// Engine wraps a tesseract client. It is not safe for concurrent use;
// create one engine per goroutine.
type Engine struct {
	client *gosseract.Client
}

// New creates an engine with default configuration. Close it when done.
func New() (*Engine, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(config Config) (*Engine, error) {
	client := gosseract.NewClient()
	if config.Language != "" {
		if err := client.SetLanguage(strings.Split(config.Language, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("ocr: set language: %w", err)
		}
	}
	return &Engine{client: client}, nil
}

// Close releases tesseract resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// RecognizeImage runs OCR over encoded image data (PNG, JPEG, TIFF, BMP,
// GIF) and returns the recognized text, trimmed.
func (e *Engine) RecognizeImage(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("ocr: decode image: %w", err)
	}
	return e.recognize(img)
}

// RecognizeFile runs OCR over an image file on disk.
func (e *Engine) RecognizeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("ocr: read %s: %w", path, err)
	}
	return e.RecognizeImage(data)
}

// recognize re-encodes to PNG so tesseract sees one well-supported format
// regardless of the source encoding.
func (e *Engine) recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("ocr: encode page: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("ocr: set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Method acquires grids by rasterizing document pages and running OCR
// over them. It is the slowest method and should run last in a cascade.
type Method struct {
	config Config
}

// NewMethod creates an OCR acquisition method with default configuration.
func NewMethod() *Method {
	return &Method{config: DefaultConfig()}
}

// NewMethodWithConfig creates an OCR acquisition method with custom
// configuration.
func NewMethodWithConfig(config Config) *Method {
	return &Method{config: config}
}

// Name identifies the method in cascade diagnostics.
func (m *Method) Name() string {
	return "ocr"
}

// Extract rasterizes every page of the document at path, recognizes each
// one, and converts the text to a grid by whitespace alignment. Image
// files are recognized directly.
func (m *Method) Extract(path string) ([]cascade.Extraction, error) {
	engine, err := NewWithConfig(m.config)
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		text, err := engine.RecognizeFile(path)
		if err != nil {
			return nil, err
		}
		g := Gridify(text)
		if g.IsEmpty() {
			return nil, nil
		}
		return []cascade.Extraction{{Grid: g, Page: 1}}, nil
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("ocr: open %s: %w", path, err)
	}
	defer doc.Close()

	var out []cascade.Extraction
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, fmt.Errorf("ocr: rasterize page %d: %w", n+1, err)
		}
		text, err := engine.recognize(img)
		if err != nil {
			return nil, err
		}
		g := Gridify(text)
		if g.IsEmpty() {
			continue
		}
		out = append(out, cascade.Extraction{Grid: g, Page: n + 1})
	}
	return out, nil
}

var _ cascade.Method = (*Method)(nil)
