// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// Extraction quality levels, recorded on the resume so callers can tell
// whether segmentation ran over clean or lossy text.
const (
	QualityFull     = "full"
	QualityPartial  = "partial"
	QualityDegraded = "degraded"
)

// ErrUnsupportedType indicates the payload is not a PDF, DOCX, or plain text file.
var ErrUnsupportedType = errors.New("extract: unsupported file type")

// Result carries the extracted text plus a quality grade.
type Result struct {
	Text    string
	Quality string
}

// FromBytes extracts text from an in-memory upload.
func FromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	normalized := normalizeMimeType(mimeType, fileName, data)
	switch normalized {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimeText, "text/markdown", "":
		if !utf8.Valid(data) {
			return Result{}, fmt.Errorf("%w: %s (invalid utf-8)", ErrUnsupportedType, normalized)
		}
		return Result{Text: string(data), Quality: QualityFull}, nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
}

func extractPDF(data []byte) (Result, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("extract: pdf: %w", err)
	}

	// GetPlainText fails on encrypted or malformed documents; fall back to
	// per-page extraction and grade the result as partial.
	plain, err := pdfReader.GetPlainText()
	if err == nil {
		var buf bytes.Buffer
		if _, copyErr := io.Copy(&buf, plain); copyErr == nil {
			return gradeText(buf.String(), QualityFull), nil
		}
	}

	var buf strings.Builder
	pages := pdfReader.NumPage()
	failed := 0
	for i := 1; i <= pages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			failed++
			continue
		}
		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			failed++
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	if buf.Len() == 0 {
		return Result{}, fmt.Errorf("extract: pdf: no extractable text")
	}
	quality := QualityPartial
	if failed > 0 {
		quality = QualityDegraded
	}
	return gradeText(buf.String(), quality), nil
}

func extractDOCX(data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, errors.New("extract: empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("extract: docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return Result{}, errors.New("extract: docx: document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return Result{}, fmt.Errorf("extract: docx: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return Result{}, fmt.Errorf("extract: docx: %w", err)
	}

	text, clean := stripDocxXML(string(raw))
	quality := QualityFull
	if !clean {
		quality = QualityPartial
	}
	return gradeText(text, quality), nil
}

// stripDocxXML flattens WordprocessingML into plain text, inserting newlines
// at paragraph and break boundaries. The bool reports whether the document
// parsed to the end without decoder errors.
func stripDocxXML(raw string) (string, bool) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strings.TrimSpace(buf.String()), false
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), true
}

// gradeText downgrades the quality when the text is suspiciously short.
func gradeText(text string, quality string) Result {
	trimmed := strings.TrimSpace(text)
	if quality == QualityFull && len(trimmed) < 50 {
		quality = QualityPartial
	}
	return Result{Text: trimmed, Quality: quality}
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "" || clean == "application/octet-stream" {
		return mimeFromExtension(fileName, clean)
	}
	if clean != "application/zip" {
		return clean
	}

	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}
	return mimeFromExtension(fileName, clean)
}

func mimeFromExtension(fileName string, fallback string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".txt", ".text", ".md":
		return mimeText
	default:
		return fallback
	}
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			return mimeDOCX
		}
	}
	return ""
}
