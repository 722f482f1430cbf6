package domain

// CategoryID identifies a top-level issue category.
type CategoryID string

// SubcategoryID identifies a sub-issue within a category.
type SubcategoryID string

// Subcategory describes one sub-issue of a category.
type Subcategory struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Category is one node of the two-level issue taxonomy.
type Category struct {
	Label       string                       `json:"label"`
	Description string                       `json:"description,omitempty"`
	SubIssues   map[SubcategoryID]Subcategory `json:"subIssues"`
}

// CategoryData maps category ids to their definitions. The assignment engine
// treats it as a read-only data source.
type CategoryData map[CategoryID]Category

// Has reports whether the category id is part of the taxonomy.
func (d CategoryData) Has(id CategoryID) bool {
	_, ok := d[id]
	return ok
}

// HasSub reports whether the subcategory belongs to the given category.
func (d CategoryData) HasSub(id CategoryID, sub SubcategoryID) bool {
	cat, ok := d[id]
	if !ok {
		return false
	}
	_, ok = cat.SubIssues[sub]
	return ok
}

// Label returns the display label for a category, falling back to the raw id
// for categories outside the taxonomy.
func (d CategoryData) Label(id CategoryID) string {
	if cat, ok := d[id]; ok {
		return cat.Label
	}
	return string(id)
}
