package query

// Direction is a SQL sort direction.
type Direction string

// Sort directions
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// OrderTerm is one ORDER BY column.
type OrderTerm struct {
	Column    string
	Direction Direction
}

// Schema whitelists what callers may touch on one table.
type Schema struct {
	Table string
	// Columns is the SELECT / RETURNING list.
	Columns []string
	// Filters maps public filter keys to column names.
	Filters map[string]string
	// Mutable lists the columns a partial update may assign.
	Mutable []string
	// Touch, when set, is refreshed to CURRENT_TIMESTAMP on every update.
	Touch string
	// DefaultOrder applies when the caller supplies no ordering.
	DefaultOrder []OrderTerm
}

// Problems is the problems table schema. Ordering is fixed.
var Problems = Schema{
	Table:   "problems",
	Columns: []string{"id", "title", "description", "category", "severity", "image_url", "created_at"},
	Filters: map[string]string{
		"category": "category",
		"severity": "severity",
	},
	DefaultOrder: []OrderTerm{{"severity", Desc}, {"created_at", Desc}},
}

// Solutions is the solutions table schema. impact and difficulty are the
// solution_rank enum, so ordering follows low < medium < high.
var Solutions = Schema{
	Table:   "solutions",
	Columns: []string{"id", "problem_id", "title", "description", "level", "difficulty", "impact", "created_at"},
	Filters: map[string]string{
		"level":      "level",
		"difficulty": "difficulty",
		"impact":     "impact",
		"problem_id": "problem_id",
	},
	DefaultOrder: []OrderTerm{{"impact", Desc}, {"difficulty", Asc}},
}

// Ideas is the ideas table schema.
var Ideas = Schema{
	Table:   "ideas",
	Columns: []string{"id", "author_name", "title", "description", "category", "status", "votes", "created_at", "updated_at"},
	Filters: map[string]string{
		"category": "category",
		"status":   "status",
	},
	Mutable:      []string{"author_name", "title", "description", "category", "status"},
	Touch:        "updated_at",
	DefaultOrder: []OrderTerm{{"created_at", Desc}},
}

// IdeaOrder resolves the public sort/order query values. sort=votes orders by
// vote count, anything else by creation time; order=asc is ascending, anything
// else descending.
func IdeaOrder(sort, order string) OrderTerm {
	term := OrderTerm{Column: "created_at", Direction: Desc}
	if sort == "votes" {
		term.Column = "votes"
	}
	if order == "asc" {
		term.Direction = Asc
	}
	return term
}

func (s Schema) isMutable(column string) bool {
	for _, c := range s.Mutable {
		if c == column {
			return true
		}
	}
	return false
}

func (s Schema) isColumn(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}
