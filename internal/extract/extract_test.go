package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
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

func TestResumeTextFromDOCX(t *testing.T) {
	doc := `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>Robotics engineer</w:t></w:r></w:p><w:p><w:r><w:t>ROS2, SLAM, deployment</w:t></w:r></w:p></w:body></w:document>`
	data := buildDOCX(t, doc)

	got, err := ResumeText(data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "resume.docx")
	if err != nil {
		t.Fatalf("ResumeText: %v", err)
	}
	if !strings.Contains(got, "Robotics engineer") || !strings.Contains(got, "SLAM") {
		t.Errorf("unexpected text: %q", got)
	}
	if !strings.Contains(got, "\n") {
		t.Errorf("paragraph breaks should become newlines: %q", got)
	}
}

func TestResumeTextDOCXSentAsZip(t *testing.T) {
	data := buildDOCX(t, `<d><p>hello resume</p></d>`)
	if _, err := ResumeText(data, "application/zip", "resume.docx"); err != nil {
		t.Fatalf("zip-wrapped docx should extract: %v", err)
	}
}

func TestResumeTextRejectsPlainZip(t *testing.T) {
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

	if _, err := ResumeText(buf.Bytes(), "application/zip", "notes.zip"); err == nil {
		t.Fatal("expected unsupported type error for a plain zip")
	}
}

func TestResumeTextRejectsUnknownType(t *testing.T) {
	_, err := ResumeText([]byte("plain"), "image/png", "photo.png")
	if err == nil || !strings.Contains(err.Error(), "unsupported resume type") {
		t.Fatalf("err = %v, want unsupported resume type", err)
	}
}
