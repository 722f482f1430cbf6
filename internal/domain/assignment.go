package domain

// CategoryAssignment holds the admin-curated preferred technicians for one
// category: a category-wide set plus per-subcategory sets. Id sets are kept
// de-duplicated by the registry; insertion order is irrelevant.
type CategoryAssignment struct {
	Technicians   []string                   `json:"technicians"`
	Subcategories map[SubcategoryID][]string `json:"subcategories"`
}

// CategoryAssignments maps category ids to their preferred-technician sets.
type CategoryAssignments map[CategoryID]CategoryAssignment

// CategoryPreferred returns the preferred set for a category.
func (a CategoryAssignments) CategoryPreferred(id CategoryID) []string {
	return a[id].Technicians
}

// SubcategoryPreferred returns the preferred set for a subcategory.
func (a CategoryAssignments) SubcategoryPreferred(id CategoryID, sub SubcategoryID) []string {
	return a[id].Subcategories[sub]
}

// IsCategoryPreferred reports membership in the category's preferred set.
func (a CategoryAssignments) IsCategoryPreferred(id CategoryID, technicianID string) bool {
	return containsID(a[id].Technicians, technicianID)
}

// IsSubcategoryPreferred reports membership in the subcategory's preferred set.
func (a CategoryAssignments) IsSubcategoryPreferred(id CategoryID, sub SubcategoryID, technicianID string) bool {
	if sub == "" {
		return false
	}
	return containsID(a[id].Subcategories[sub], technicianID)
}

// Clone returns a deep copy so consumers never share backing slices or maps
// with the registry's current value.
func (a CategoryAssignments) Clone() CategoryAssignments {
	next := make(CategoryAssignments, len(a))
	for id, assignment := range a {
		subs := make(map[SubcategoryID][]string, len(assignment.Subcategories))
		for sub, ids := range assignment.Subcategories {
			subs[sub] = append([]string(nil), ids...)
		}
		next[id] = CategoryAssignment{
			Technicians:   append([]string(nil), assignment.Technicians...),
			Subcategories: subs,
		}
	}
	return next
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
