package capture

// Snapshot is everything captured from one page load.
type Snapshot struct {
	URL        string       `json:"url"`
	Title      string       `json:"title"`
	HTML       string       `json:"html"`
	Stylesheet string       `json:"stylesheet,omitempty"`
	Sections   []DOMSection `json:"sections"`
	Desktop    []byte       `json:"-"`
	Mobile     []byte       `json:"-"`
	IsSPA      bool         `json:"isSPA"`
}

// DOMSection is one section-like element found in the rendered page.
type DOMSection struct {
	Tag      string   `json:"tag"`
	ID       string   `json:"id,omitempty"`
	Classes  []string `json:"classes,omitempty"`
	Selector string   `json:"selector"`
	Role     string   `json:"role,omitempty"`
	Text     string   `json:"text,omitempty"`
	Box      Box      `json:"box"`
}

// Box is a bounding box in CSS pixels relative to the document.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is a screenshot preset.
type Viewport struct {
	Name   string
	Width  int
	Height int
	Mobile bool
}
