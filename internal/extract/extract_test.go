package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes_PlainText(t *testing.T) {
	text := "EXPERIENCE\nSoftware Engineer at Acme\nBuilt things that scaled well enough."
	res, err := FromBytes(context.Background(), []byte(text), "text/plain; charset=utf-8", "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != text {
		t.Fatalf("expected passthrough text, got %q", res.Text)
	}
	if res.Quality != QualityFull {
		t.Fatalf("expected quality %q, got %q", QualityFull, res.Quality)
	}
}

func TestFromBytes_ShortTextGradedPartial(t *testing.T) {
	res, err := FromBytes(context.Background(), []byte("hi"), "text/plain", "note.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Quality != QualityPartial {
		t.Fatalf("expected quality %q for near-empty text, got %q", QualityPartial, res.Quality)
	}
}

func TestFromBytes_Docx(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>EXPERIENCE</w:t></w:r></w:p><w:p><w:r><w:t>Software Engineer at Acme</w:t></w:r></w:p></w:body></w:document>`
	data := buildDocx(t, doc)

	res, err := FromBytes(context.Background(), data, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "EXPERIENCE") || !strings.Contains(res.Text, "Software Engineer at Acme") {
		t.Fatalf("missing docx content: %q", res.Text)
	}
	if !strings.Contains(res.Text, "\n") {
		t.Fatalf("expected paragraph boundary to produce newline: %q", res.Text)
	}
}

func TestFromBytes_ZipDocxNormalizes(t *testing.T) {
	doc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Skills: Go, SQL</w:t></w:r></w:p></w:body></w:document>`
	data := buildDocx(t, doc)

	res, err := FromBytes(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if !strings.Contains(res.Text, "Skills: Go, SQL") {
		t.Fatalf("unexpected text: %q", res.Text)
	}
}

func TestFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = FromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestFromBytes_OctetStreamUsesExtension(t *testing.T) {
	res, err := FromBytes(context.Background(), []byte("plain resume body text goes here, long enough to grade as full quality"), "application/octet-stream", "resume.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Quality != QualityFull {
		t.Fatalf("expected full quality, got %q", res.Quality)
	}
}

func TestFromBytes_UnsupportedExtension(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte{0x00, 0x01}, "image/png", "photo.png")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}
