package models

// Category classifies problems and ideas by environmental domain.
type Category string

// Supported categories
const (
	CategoryWater     Category = "Water"
	CategoryForest    Category = "Forest"
	CategoryAir       Category = "Air"
	CategoryWaste     Category = "Waste"
	CategoryRadiation Category = "Radiation"
	CategorySoil      Category = "Soil"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWater, CategoryForest, CategoryAir, CategoryWaste, CategoryRadiation, CategorySoil,
}

// Level is the scale at which a solution is applied.
type Level string

// Solution levels
const (
	LevelIndividual Level = "individual"
	LevelCommunity  Level = "community"
	LevelGovernment Level = "government"
)

// Levels lists every solution level.
var Levels = []Level{LevelIndividual, LevelCommunity, LevelGovernment}

// Rank grades solution difficulty and impact. Stored as the ordered
// solution_rank enum so sorting follows low < medium < high.
type Rank string

// Ranks in ascending order
const (
	RankLow    Rank = "low"
	RankMedium Rank = "medium"
	RankHigh   Rank = "high"
)

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{RankLow, RankMedium, RankHigh}

// IdeaStatus tracks an idea through moderation.
type IdeaStatus string

// Idea statuses
const (
	IdeaStatusPending     IdeaStatus = "pending"
	IdeaStatusApproved    IdeaStatus = "approved"
	IdeaStatusInProgress  IdeaStatus = "in_progress"
	IdeaStatusImplemented IdeaStatus = "implemented"
	IdeaStatusRejected    IdeaStatus = "rejected"
)

// IdeaStatuses lists every idea status.
var IdeaStatuses = []IdeaStatus{
	IdeaStatusPending, IdeaStatusApproved, IdeaStatusInProgress, IdeaStatusImplemented, IdeaStatusRejected,
}

// MinSeverity and MaxSeverity bound Problem.Severity.
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return contains(Categories, c) }

// Valid reports whether l is a known level.
func (l Level) Valid() bool { return contains(Levels, l) }

// Valid reports whether r is a known rank.
func (r Rank) Valid() bool { return contains(Ranks, r) }

// Valid reports whether s is a known idea status.
func (s IdeaStatus) Valid() bool { return contains(IdeaStatuses, s) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
