// Package extraction turns résumé PDFs into text and pulls skills, contact
// details, profile links and a location guess out of that text.
package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"code.sajari.com/docconv"

	"github.com/jonathan/jobhunt/internal/types"
)

var pdfMagic = []byte("%PDF-")

// UnreadablePDFError is returned when a byte stream cannot be decoded as a PDF.
type UnreadablePDFError struct {
	Message string
	Cause   error
}

func (e *UnreadablePDFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unreadable PDF: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("unreadable PDF: %s", e.Message)
}

func (e *UnreadablePDFError) Unwrap() error {
	return e.Cause
}

// ConverterTools are the poppler binaries docconv runs for PDF input.
var ConverterTools = []string{"pdftotext", "pdfinfo"}

// ConverterUnavailableError is returned when the PDF converter cannot run on
// this host. The upload itself may be fine.
type ConverterUnavailableError struct {
	Tool  string
	Cause error
}

func (e *ConverterUnavailableError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("PDF converter unavailable: %s not found in PATH", e.Tool)
	}
	return fmt.Sprintf("PDF converter unavailable: %v", e.Cause)
}

func (e *ConverterUnavailableError) Unwrap() error {
	return e.Cause
}

// CheckConverter reports the first converter tool missing from PATH.
func CheckConverter() error {
	for _, tool := range ConverterTools {
		if _, err := exec.LookPath(tool); err != nil {
			return &ConverterUnavailableError{Tool: tool, Cause: err}
		}
	}
	return nil
}

// TextExtractor decodes PDF bytes into text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (*types.ExtractedText, error)
}

// DocconvExtractor extracts text with docconv, which shells out to poppler's
// pdftotext and pdfinfo.
type DocconvExtractor struct {
	convert func(io.Reader) (string, map[string]string, error)
}

// NewDocconvExtractor returns a TextExtractor backed by docconv.
func NewDocconvExtractor() *DocconvExtractor {
	return &DocconvExtractor{convert: docconv.ConvertPDF}
}

// ExtractText decodes data as a PDF.
func (d *DocconvExtractor) ExtractText(ctx context.Context, data []byte) (*types.ExtractedText, error) {
	if err := CheckPDFHeader(data); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	convert := d.convert
	if convert == nil {
		convert = docconv.ConvertPDF
	}
	text, meta, err := convert(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			var execErr *exec.Error
			tool := ""
			if errors.As(err, &execErr) {
				tool = execErr.Name
			}
			return nil, &ConverterUnavailableError{Tool: tool, Cause: err}
		}
		return nil, &UnreadablePDFError{Message: "failed to convert PDF", Cause: err}
	}

	return &types.ExtractedText{
		Text:      text,
		PageCount: pageCount(meta),
	}, nil
}

// CheckPDFHeader rejects byte streams that do not start with the PDF signature.
func CheckPDFHeader(data []byte) error {
	if len(data) == 0 {
		return &UnreadablePDFError{Message: "empty file"}
	}
	// The signature may follow a few bytes of junk; readers tolerate up to 1 KiB.
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	if !bytes.Contains(head, pdfMagic) {
		return &UnreadablePDFError{Message: "missing %PDF header"}
	}
	return nil
}

func pageCount(meta map[string]string) int {
	raw, ok := meta["Pages"]
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
