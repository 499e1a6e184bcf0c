package metadata

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Document holds the parts of a .docx file the extractor cares about: the
// structured core properties and the flattened paragraph text.
type Document struct {
	Creator    string
	Title      string
	Paragraphs []string
}

// coreProperties mirrors docProps/core.xml. Matching is by local name, so the
// dc/cp namespace prefixes do not matter.
type coreProperties struct {
	XMLName xml.Name `xml:"coreProperties"`
	Creator string   `xml:"creator"`
	Title   string   `xml:"title"`
}

// OpenDocx reads a Word document from disk. Both the core properties part and
// the document body are optional; a docx missing either still yields a usable
// Document.
func OpenDocx(path string) (*Document, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx %s: %w", path, err)
	}
	defer reader.Close()

	doc := &Document{}
	for _, file := range reader.File {
		switch file.Name {
		case "docProps/core.xml":
			if err := readCoreProperties(file, doc); err != nil {
				return nil, err
			}
		case "word/document.xml":
			if err := readBody(file, doc); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func readCoreProperties(file *zip.File, doc *Document) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open core properties: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read core properties: %w", err)
	}

	var props coreProperties
	if err := xml.Unmarshal(data, &props); err != nil {
		return fmt.Errorf("parse core properties: %w", err)
	}
	doc.Creator = strings.TrimSpace(props.Creator)
	doc.Title = strings.TrimSpace(props.Title)
	return nil
}

// readBody streams word/document.xml and flattens each w:p element into one
// paragraph string, concatenating the text runs it contains.
func readBody(file *zip.File, doc *Document) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open document body: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraph strings.Builder
	inText := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse document body: %w", err)
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				text := strings.TrimSpace(paragraph.String())
				paragraph.Reset()
				if text != "" {
					doc.Paragraphs = append(doc.Paragraphs, text)
				}
			}
		case xml.CharData:
			if inText {
				paragraph.Write(el)
			}
		}
	}
	return nil
}
