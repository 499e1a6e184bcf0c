// Package viewer renders the companion Mirador component written next to
// each generated manifest. The output is a template fill with no runtime
// logic; the file name is fixed so re-runs overwrite instead of accumulating
// per-author variants.
package viewer

import (
	"bytes"
	"fmt"
	"text/template"

	"folio/internal/metadata"
	"folio/internal/textutil"
)

// FileName is the viewer stub's fixed on-disk name inside a book folder.
const FileName = "viewer.jsx"

var stubTemplate = template.Must(template.New("viewer").Parse(`'use client';
import React from 'react';
import dynamic from 'next/dynamic';

const MiradorViewer = dynamic(
  () => import('../../../components/MiradorWrapper'),
  { ssr: false }
);

// Book {{.BookID}} - {{.DisplayAuthor}}
function BookViewer() {
  return (
    <div className="viewer-container" style={{"{{"}}height:'100vh',width:'100%',margin:0,padding:0,overflow:'hidden',position:'relative',display:'flex',flexDirection:'column'{{"}}"}}>
      <MiradorViewer
        config={{"{{"}}
          id: 'mirador-viewer-{{.BookID}}-{{.AuthorSlug}}',
          selectedTheme: 'dark',
          windows: [{
            loadedManifest: '{{.ManifestURL}}',
            canvasIndex: 0
          }],
          window: {
            allowClose: false,
            allowMaximize: false,
            allowFullscreen: true,
            allowWindowSideBar: true,
            sideBarOpenByDefault: false
          },
          workspace: {
            showZoomControls: true,
            type: 'mosaic'
          },
          thumbnailNavigation: {
            defaultPosition: 'far-bottom',
            displaySettings: true
          }
        {{"}}"}}
      />
    </div>
  );
}

export default BookViewer;
`))

type stubData struct {
	BookID        string
	DisplayAuthor string
	AuthorSlug    string
	ManifestURL   string
}

// Generate renders the viewer component for one book. manifestURL is the
// published URL of the sibling manifest.
func Generate(meta metadata.BookMetadata, manifestURL string) ([]byte, error) {
	slug := textutil.Slugify(meta.Author)
	if slug == "" {
		slug = "unknown"
	}
	author := meta.Author
	if author == "" {
		author = "Unknown Author"
	}

	var buf bytes.Buffer
	err := stubTemplate.Execute(&buf, stubData{
		BookID:        meta.ID,
		DisplayAuthor: author,
		AuthorSlug:    slug,
		ManifestURL:   manifestURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render viewer stub: %w", err)
	}
	return buf.Bytes(), nil
}
