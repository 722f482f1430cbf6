package dto

import "github.com/spec-kit/helpdesk-assignment/internal/domain"

// SetPreferredRequest replaces the preferred technicians of a category or
// subcategory.
type SetPreferredRequest struct {
	TechnicianIDs []string `json:"technicianIds"`
}

// CategoryResponse is one taxonomy node with its sub-issues.
type CategoryResponse struct {
	ID          domain.CategoryID     `json:"id"`
	Label       string                `json:"label"`
	Description string                `json:"description,omitempty"`
	SubIssues   []SubcategoryResponse `json:"subIssues"`
}

// SubcategoryResponse is one sub-issue of a category.
type SubcategoryResponse struct {
	ID          domain.SubcategoryID `json:"id"`
	Label       string               `json:"label"`
	Description string               `json:"description,omitempty"`
}
