// Package extract renders uploaded file blobs as plain text so their
// content can be fed into a prompt.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat means the declared file type has no extractor. It is
// informational: callers should tell the user, not fail the request.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extract renders a file blob as plain text based on its declared
// extension (without the leading dot, case-insensitive).
func Extract(blob []byte, declaredExt string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(declaredExt, ".")) {
	case "txt", "md", "log", "csv", "tsv":
		return string(blob), nil
	case "xlsx":
		return extractXLSX(blob)
	case "pdf":
		return extractPDF(blob)
	case "docx":
		return extractDOCX(blob)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, declaredExt)
	}
}

func extractXLSX(blob []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return "", fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
		}
		b.WriteString("# " + sheet + "\n")
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func extractPDF(blob []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return string(text), nil
}

// extractDOCX pulls the text runs out of word/document.xml. A .docx file is
// a zip of OOXML parts; visible text lives in <w:t> elements and paragraphs
// end at </w:p>.
func extractDOCX(blob []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", fmt.Errorf("opening docx document part: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx archive has no word/document.xml")
	}
	defer func() {
		_ = doc.Close()
	}()

	var b strings.Builder
	decoder := xml.NewDecoder(doc)
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing docx document: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
	return b.String(), nil
}
