// Package blueprint segments a captured page into semantic section
// descriptions the code generators build from.
package blueprint

// InputKind is the kind of a merchant-editable section input.
type InputKind string

const (
	KindText             InputKind = "text"
	KindImage            InputKind = "image"
	KindURL              InputKind = "url"
	KindProductReference InputKind = "product-reference"
	KindColor            InputKind = "color"
	KindNumber           InputKind = "number"
)

// Section describes one logical region of the page.
type Section struct {
	Type       string           `json:"type" validate:"required"`
	Purpose    string           `json:"purpose" validate:"required"`
	Hierarchy  []HierarchyEntry `json:"visualHierarchy,omitempty"`
	Patterns   []Pattern        `json:"repeatingPatterns,omitempty"`
	Inputs     []Input          `json:"inputs,omitempty"`
	Conditions []Condition      `json:"conditionalDisplay,omitempty"`
}

// HierarchyEntry ranks one element of a section, 1 (least) to 10 (most important).
type HierarchyEntry struct {
	ElementID  string `json:"elementId"`
	Importance int    `json:"importance"`
}

// Pattern is a repeated structure inside a section (product cards, slides).
type Pattern struct {
	Name     string   `json:"name"`
	Selector string   `json:"selector,omitempty"`
	Count    int      `json:"count,omitempty"`
	Fields   []string `json:"fields,omitempty"`
}

// Input is one value a merchant can edit for a section.
type Input struct {
	ID      string    `json:"id,omitempty"`
	Kind    InputKind `json:"kind" validate:"oneof=text image url product-reference color number"`
	Purpose string    `json:"purpose"`
	Default any       `json:"default,omitempty"`
}

// Condition shows or hides part of a section.
type Condition struct {
	When string `json:"when"`
	Show string `json:"show"`
}

// MaxImportance returns the highest importance in the section's hierarchy.
func (s Section) MaxImportance() int {
	best := 0
	for _, h := range s.Hierarchy {
		best = max(best, h.Importance)
	}
	return best
}
