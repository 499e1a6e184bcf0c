package testsupport

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteDocx creates a minimal Word document at path with the given core
// properties and body paragraphs. Empty creator/title omit the property.
func WriteDocx(t testing.TB, path, creator, title string, paragraphs ...string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	core, err := zw.Create("docProps/core.xml")
	if err != nil {
		t.Fatalf("create core.xml: %v", err)
	}
	fmt.Fprintf(core, `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	if creator != "" {
		fmt.Fprintf(core, "<dc:creator>%s</dc:creator>", creator)
	}
	if title != "" {
		fmt.Fprintf(core, "<dc:title>%s</dc:title>", title)
	}
	fmt.Fprint(core, "</cp:coreProperties>")

	body, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	fmt.Fprint(body, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, paragraph := range paragraphs {
		fmt.Fprintf(body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", paragraph)
	}
	fmt.Fprint(body, "</w:body></w:document>")

	if err := zw.Close(); err != nil {
		t.Fatalf("close docx zip: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WritePNG creates a real PNG at path with the given dimensions, so
// image.DecodeConfig reads them back.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

// WriteOpaqueImage creates a file with an image extension whose dimensions
// cannot be decoded, exercising the default-geometry fallback.
func WriteOpaqueImage(t testing.TB, path string) {
	t.Helper()
	writeFile(t, path, []byte("not an image payload"))
}

// WriteBookFolder lays out a complete book folder: a metadata document with
// the given author line and count sequentially named undecodable page images.
func WriteBookFolder(t testing.TB, folder, author string, count int) {
	t.Helper()

	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", folder, err)
	}
	WriteDocx(t, filepath.Join(folder, "metadata.docx"), "", "", "Author: "+author)
	for i := 1; i <= count; i++ {
		WriteOpaqueImage(t, filepath.Join(folder, fmt.Sprintf("image%03d.jpg", i)))
	}
}

func writeFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
