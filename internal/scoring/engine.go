package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/spec-kit/helpdesk-assignment/internal/domain"
)

// Composite score weights. They sum to 100; preference and bonus points are
// added on top uncapped.
const (
	specialtyWeight  = 40.0
	priorityWeight   = 25.0
	ratingWeight     = 20.0
	workloadWeight   = 10.0
	experienceWeight = 5.0

	primarySpecialtyBonus = 10.0
	specialtyMismatch     = -15.0
	subSpecialtyBonus     = 6.0
	categoryListBonus     = 5.0
	subcategoryListBonus  = 8.0

	// A technician at or above this active-ticket count contributes no
	// workload points and is skipped by the least-busy fallback.
	workloadCap = 8
)

// priorityRequirement holds the minimum rating and completed-ticket count a
// priority level expects from a technician.
type priorityRequirement struct {
	rating    float64
	completed int
}

var priorityRequirements = map[domain.TicketPriority]priorityRequirement{
	domain.TicketPriorityUrgent: {rating: 4.5, completed: 30},
	domain.TicketPriorityHigh:   {rating: 4.0, completed: 20},
	domain.TicketPriorityMedium: {rating: 3.5, completed: 10},
	domain.TicketPriorityLow:    {rating: 3.0, completed: 5},
}

var relatedCategories = map[domain.CategoryID][]domain.CategoryID{
	"hardware": {"hardware", "network"},
	"software": {"software", "access"},
	"network":  {"network", "hardware", "security"},
	"email":    {"email", "software", "security"},
	"security": {"security", "network", "access"},
	"access":   {"access", "security", "software"},
}

// Candidate is a technician scored against one ticket. Ephemeral: recomputed
// per assignment decision, never persisted.
type Candidate struct {
	Technician   domain.Technician
	Score        float64
	MatchReasons []string
}

// Engine ranks technicians for tickets. It is stateless apart from the
// read-only category taxonomy, used for reason labels.
type Engine struct {
	categories domain.CategoryData
}

// NewEngine creates an engine over the given taxonomy.
func NewEngine(categories domain.CategoryData) *Engine {
	return &Engine{categories: categories}
}

// PreferredPool returns the technicians explicitly listed under the ticket's
// category, plus those listed under its subcategory when set. Roster order is
// preserved. An empty union yields an empty pool, not the full roster.
func PreferredPool(ticket domain.Ticket, technicians []domain.Technician, prefs domain.CategoryAssignments) []domain.Technician {
	members := make(map[string]struct{})
	for _, id := range prefs.CategoryPreferred(ticket.Category) {
		members[id] = struct{}{}
	}
	if ticket.Subcategory != "" {
		for _, id := range prefs.SubcategoryPreferred(ticket.Category, ticket.Subcategory) {
			members[id] = struct{}{}
		}
	}
	if len(members) == 0 {
		return nil
	}
	pool := make([]domain.Technician, 0, len(members))
	for _, tech := range technicians {
		if _, ok := members[tech.ID]; ok {
			pool = append(pool, tech)
		}
	}
	return pool
}

// Recommend selects the best technician for the ticket, or reports that none
// qualifies. Pool selection: preferred pool first, then the full roster;
// available technicians first, then the whole base pool; as a last resort the
// least-busy technician under the workload cap, first encountered winning
// ties. Scored pools are ranked by composite score, ties broken by pool order.
func (e *Engine) Recommend(ticket domain.Ticket, technicians []domain.Technician, prefs domain.CategoryAssignments) (Candidate, bool) {
	preferred := PreferredPool(ticket, technicians, prefs)
	basePool := preferred
	if len(basePool) == 0 {
		basePool = technicians
	}

	var available []domain.Technician
	for _, tech := range basePool {
		if tech.Status == domain.TechnicianAvailable {
			available = append(available, tech)
		}
	}
	scoringPool := available
	if len(scoringPool) == 0 {
		scoringPool = basePool
	}

	if len(scoringPool) == 0 {
		leastBusy := -1
		for i, tech := range technicians {
			if tech.ActiveTickets >= workloadCap {
				continue
			}
			if leastBusy < 0 || tech.ActiveTickets < technicians[leastBusy].ActiveTickets {
				leastBusy = i
			}
		}
		if leastBusy < 0 {
			return Candidate{}, false
		}
		tech := technicians[leastBusy]
		return e.candidate(tech, ticket, prefs), true
	}

	candidates := make([]Candidate, 0, len(scoringPool))
	for _, tech := range scoringPool {
		candidates = append(candidates, e.candidate(tech, ticket, prefs))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates[0], true
}

func (e *Engine) candidate(tech domain.Technician, ticket domain.Ticket, prefs domain.CategoryAssignments) Candidate {
	return Candidate{
		Technician:   tech,
		Score:        e.Score(tech, ticket, prefs),
		MatchReasons: e.MatchReasons(tech, ticket, prefs),
	}
}

// Score computes the composite suitability score, rounded to one decimal.
func (e *Engine) Score(tech domain.Technician, ticket domain.Ticket, prefs domain.CategoryAssignments) float64 {
	score := 0.0

	if tech.HasSpecialty(ticket.Category) {
		score += specialtyWeight
		if tech.PrimarySpecialty() == ticket.Category {
			score += primarySpecialtyBonus
		}
	} else {
		score += specialtyMismatch
	}

	if ticket.Subcategory != "" && tech.HasSubSpecialty(ticket.Subcategory) {
		score += subSpecialtyBonus
	}

	if prefs.IsCategoryPreferred(ticket.Category, tech.ID) {
		score += categoryListBonus
	}
	if prefs.IsSubcategoryPreferred(ticket.Category, ticket.Subcategory, tech.ID) {
		score += subcategoryListBonus
	}

	score += priorityScore(tech, ticket.Priority) / 100 * priorityWeight
	score += tech.Rating / 5 * ratingWeight

	workloadScore := math.Max(0, float64(workloadCap-tech.ActiveTickets)/workloadCap*100)
	score += workloadScore / 100 * workloadWeight

	experienceScore := math.Min(100, float64(tech.CompletedTickets))
	score += experienceScore / 100 * experienceWeight

	score += bonusScore(tech, ticket, prefs)

	return math.Round(score*10) / 10
}

// priorityScore measures how well a technician meets the rating and
// experience bar of a priority level, on a 0-100 scale. Unknown priorities
// use the medium bar.
func priorityScore(tech domain.Technician, priority domain.TicketPriority) float64 {
	requirement, ok := priorityRequirements[priority]
	if !ok {
		requirement = priorityRequirements[domain.TicketPriorityMedium]
	}

	score := 60 * math.Min(1, tech.Rating/requirement.rating)
	score += 40 * math.Min(1, float64(tech.CompletedTickets)/float64(requirement.completed))
	return math.Min(100, score)
}

// bonusScore adds uncapped extras on top of the weighted base. Preferred-list
// membership counts again here on purpose: admin curation is weighted twice.
func bonusScore(tech domain.Technician, ticket domain.Ticket, prefs domain.CategoryAssignments) float64 {
	bonus := 0.0

	if hours, ok := tech.AvgResponseTime.Hours(); ok && hours < 2.0 {
		bonus += 5
	}

	if tech.Rating >= 4.8 && tech.CompletedTickets >= 50 {
		bonus += 8
	}

	related := relatedTo(ticket.Category)
	overlap := 0
	for _, specialty := range tech.Specialties {
		if containsCategory(related, specialty) {
			overlap++
		}
	}
	if overlap > 1 {
		bonus += 3
	}

	if tech.ActiveTickets <= 1 {
		bonus += 5
	}

	if prefs.IsCategoryPreferred(ticket.Category, tech.ID) {
		bonus += 4
	}
	if prefs.IsSubcategoryPreferred(ticket.Category, ticket.Subcategory, tech.ID) {
		bonus += 6
	}

	return bonus
}

func relatedTo(category domain.CategoryID) []domain.CategoryID {
	if related, ok := relatedCategories[category]; ok {
		return related
	}
	return []domain.CategoryID{category}
}

func containsCategory(categories []domain.CategoryID, id domain.CategoryID) bool {
	for _, c := range categories {
		if c == id {
			return true
		}
	}
	return false
}

// MatchReasons lists human-readable justifications for pairing the technician
// with the ticket. Advisory text only; never affects ranking.
func (e *Engine) MatchReasons(tech domain.Technician, ticket domain.Ticket, prefs domain.CategoryAssignments) []string {
	var reasons []string

	if tech.HasSpecialty(ticket.Category) {
		reasons = append(reasons, fmt.Sprintf("%s specialist", e.categories.Label(ticket.Category)))
	}
	if ticket.Subcategory != "" && tech.HasSubSpecialty(ticket.Subcategory) {
		reasons = append(reasons, "exact subcategory skill")
	}
	if prefs.IsCategoryPreferred(ticket.Category, tech.ID) {
		reasons = append(reasons, "on the category's official list")
	}
	if prefs.IsSubcategoryPreferred(ticket.Category, ticket.Subcategory, tech.ID) {
		reasons = append(reasons, "responsible for the subcategory")
	}
	if tech.Rating >= 4.5 {
		reasons = append(reasons, "high rating")
	}
	if tech.ActiveTickets <= 2 {
		reasons = append(reasons, "light workload")
	}
	if tech.CompletedTickets >= 50 {
		reasons = append(reasons, "highly experienced")
	}
	if requirement, ok := priorityRequirements[ticket.Priority]; ok && tech.Rating >= requirement.rating {
		reasons = append(reasons, fmt.Sprintf("suitable for %s priority", ticket.Priority))
	}

	return reasons
}

// RecommendationScore is the simpler formula behind the manual-assignment
// dialog's top picks. Deliberately distinct from Score: the dialog ranks for
// browsing, the composite score picks the automatic assignee.
func (e *Engine) RecommendationScore(tech domain.Technician, ticket domain.Ticket, prefs domain.CategoryAssignments) float64 {
	score := 0.0

	if tech.HasSpecialty(ticket.Category) {
		score += 50
	}
	if ticket.Subcategory != "" && tech.HasSubSpecialty(ticket.Subcategory) {
		score += 15
	}
	if tech.Status == domain.TechnicianAvailable {
		score += 30
	}
	score += math.Max(0, 20-float64(tech.ActiveTickets)*5)
	score += tech.Rating * 10

	if prefs.IsCategoryPreferred(ticket.Category, tech.ID) {
		score += 12
	}
	if prefs.IsSubcategoryPreferred(ticket.Category, ticket.Subcategory, tech.ID) {
		score += 18
	}

	return score
}

// RankForBrowsing orders the preferred pool (or, when it is empty, the full
// roster) by recommendation score for display in the manual dialog.
func (e *Engine) RankForBrowsing(ticket domain.Ticket, technicians []domain.Technician, prefs domain.CategoryAssignments) []Candidate {
	pool := PreferredPool(ticket, technicians, prefs)
	if len(pool) == 0 {
		pool = technicians
	}
	candidates := make([]Candidate, 0, len(pool))
	for _, tech := range pool {
		candidates = append(candidates, Candidate{
			Technician:   tech,
			Score:        e.RecommendationScore(tech, ticket, prefs),
			MatchReasons: e.MatchReasons(tech, ticket, prefs),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
