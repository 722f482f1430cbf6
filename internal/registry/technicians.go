package registry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
	"github.com/spec-kit/helpdesk-assignment/internal/storage"
)

// Storage keys match the dashboard's persisted snapshot identifiers.
const (
	techniciansKey         = "ticketing.technicians.v1"
	categoryAssignmentsKey = "ticketing.technician-assignments.v1"
)

// TechnicianRegistry owns the technician roster and the per-category and
// per-subcategory preferred-technician sets. Every mutation replaces the
// current value with a fresh one and persists it synchronously; readers get
// copies, never the backing slices.
type TechnicianRegistry struct {
	mu     sync.RWMutex
	store  storage.Store
	logger *zap.Logger

	seedAssignments domain.CategoryAssignments

	technicians []domain.Technician
	assignments domain.CategoryAssignments
}

// NewTechnicianRegistry loads the persisted roster and preference snapshots,
// seeding the store from the provided initial values on first use.
func NewTechnicianRegistry(
	ctx context.Context,
	store storage.Store,
	logger *zap.Logger,
	seedTechnicians []domain.Technician,
	seedAssignments domain.CategoryAssignments,
) *TechnicianRegistry {
	r := &TechnicianRegistry{
		store:           store,
		logger:          logger,
		seedAssignments: seedAssignments.Clone(),
	}
	r.technicians = storage.LoadSnapshot(ctx, store, techniciansKey, seedTechnicians, logger)
	r.assignments = storage.LoadSnapshot(ctx, store, categoryAssignmentsKey, seedAssignments.Clone(), logger)
	return r
}

// Technicians returns a copy of the current roster.
func (r *TechnicianRegistry) Technicians() []domain.Technician {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Technician(nil), r.technicians...)
}

// FindTechnician looks a technician up by id.
func (r *TechnicianRegistry) FindTechnician(id string) (domain.Technician, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tech := range r.technicians {
		if tech.ID == id {
			return tech, true
		}
	}
	return domain.Technician{}, false
}

// Assignments returns a deep copy of the preference map.
func (r *TechnicianRegistry) Assignments() domain.CategoryAssignments {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assignments.Clone()
}

// SetTechnicians replaces the roster.
func (r *TechnicianRegistry) SetTechnicians(ctx context.Context, next []domain.Technician) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.technicians = append([]domain.Technician(nil), next...)
	storage.SaveSnapshot(ctx, r.store, techniciansKey, r.technicians, r.logger)
}

// SetCategoryTechnicians replaces the preferred set of one category. The set
// is de-duplicated preserving first occurrence; subcategory sets are kept.
func (r *TechnicianRegistry) SetCategoryTechnicians(ctx context.Context, categoryID domain.CategoryID, technicianIDs []string) {
	normalized := dedupe(technicianIDs)

	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.assignments.Clone()
	current := next[categoryID]
	if current.Subcategories == nil {
		current.Subcategories = make(map[domain.SubcategoryID][]string)
	}
	current.Technicians = normalized
	next[categoryID] = current
	r.assignments = next
	storage.SaveSnapshot(ctx, r.store, categoryAssignmentsKey, r.assignments, r.logger)
}

// SetSubcategoryTechnicians replaces the preferred set of one subcategory
// under its parent category.
func (r *TechnicianRegistry) SetSubcategoryTechnicians(ctx context.Context, categoryID domain.CategoryID, subcategoryID domain.SubcategoryID, technicianIDs []string) {
	normalized := dedupe(technicianIDs)

	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.assignments.Clone()
	current := next[categoryID]
	if current.Subcategories == nil {
		current.Subcategories = make(map[domain.SubcategoryID][]string)
	}
	if current.Technicians == nil {
		current.Technicians = []string{}
	}
	current.Subcategories[subcategoryID] = normalized
	next[categoryID] = current
	r.assignments = next
	storage.SaveSnapshot(ctx, r.store, categoryAssignmentsKey, r.assignments, r.logger)
}

// ResetAssignments restores the preference map to its initial snapshot.
func (r *TechnicianRegistry) ResetAssignments(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments = r.seedAssignments.Clone()
	storage.SaveSnapshot(ctx, r.store, categoryAssignmentsKey, r.assignments, r.logger)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
