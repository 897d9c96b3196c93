package conversion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pdf2word/internal/services"
)

// MaxFileSize mirrors the 20 MiB request cap enforced by the conversion
// service; oversized files are rejected before any upload.
const MaxFileSize = 20 << 20

// User-facing validation messages.
const (
	MsgNotPDF    = "Please select a PDF file"
	MsgTooLarge  = "File size must be less than 20MB"
	MsgEmptyFile = "File is empty"
)

var pdfMagic = []byte("%PDF-")

// ValidateFile checks that path names a readable PDF the service will accept:
// a .pdf with the PDF magic header, non-empty, and at most MaxFileSize bytes.
// Violations come back as validation errors carrying the user-facing message.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "conversion", "validate", fmt.Sprintf("cannot read %s", path), err)
	}
	if !info.Mode().IsRegular() {
		return services.Wrap(services.ErrValidation, "conversion", "validate", MsgNotPDF, nil)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return services.Wrap(services.ErrValidation, "conversion", "validate", MsgNotPDF, nil)
	}
	if info.Size() == 0 {
		return services.Wrap(services.ErrValidation, "conversion", "validate", MsgEmptyFile, nil)
	}
	if info.Size() > MaxFileSize {
		return services.Wrap(services.ErrValidation, "conversion", "validate", MsgTooLarge, nil)
	}

	file, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "conversion", "validate", fmt.Sprintf("cannot read %s", path), err)
	}
	defer file.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(file, header); err != nil {
		return services.Wrap(services.ErrValidation, "conversion", "validate", MsgNotPDF, nil)
	}
	if !bytes.Equal(header, pdfMagic) {
		return services.Wrap(services.ErrValidation, "conversion", "validate", MsgNotPDF, nil)
	}
	return nil
}
