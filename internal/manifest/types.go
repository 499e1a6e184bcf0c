package manifest

// IIIF Presentation API 2.x document shapes. Field order is fixed so that
// identical inputs serialize byte-identically.

// Manifest is the top-level IIIF presentation document for one book.
type Manifest struct {
	Context     string     `json:"@context"`
	ID          string     `json:"@id"`
	Type        string     `json:"@type"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Metadata    []Metadata `json:"metadata,omitempty"`
	Sequences   []Sequence `json:"sequences"`
}

// Metadata is a display label/value pair attached to the manifest.
type Metadata struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Sequence is the ordered list of canvases.
type Sequence struct {
	Type     string   `json:"@type"`
	Canvases []Canvas `json:"canvases"`
}

// Canvas presents one page image.
type Canvas struct {
	ID     string       `json:"@id"`
	Type   string       `json:"@type"`
	Label  string       `json:"label"`
	Height int          `json:"height"`
	Width  int          `json:"width"`
	Images []Annotation `json:"images"`
}

// Annotation paints a resource onto a canvas.
type Annotation struct {
	Type       string   `json:"@type"`
	Motivation string   `json:"motivation"`
	Resource   Resource `json:"resource"`
	On         string   `json:"on"`
}

// Resource is the image content of an annotation.
type Resource struct {
	ID     string `json:"@id"`
	Type   string `json:"@type"`
	Format string `json:"format"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

const (
	contextPresentation2 = "http://iiif.io/api/presentation/2/context.json"
	typeManifest         = "sc:Manifest"
	typeSequence         = "sc:Sequence"
	typeCanvas           = "sc:Canvas"
	typeAnnotation       = "oa:Annotation"
	typeImage            = "dctypes:Image"
	motivationPainting   = "sc:painting"
)
