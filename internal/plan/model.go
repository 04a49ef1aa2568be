package plan

import "fmt"

type Plan struct {
	ID          int     `db:"id" json:"id"`
	GymID       int     `db:"gym_id" json:"gym_id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
}

type PlanRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// ConflictError reports a plan name collision within a gym. The match is
// case-sensitive and exact.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a plan named '%s' already exists", e.Name)
}

// InUseError blocks deletion of a plan that members still reference.
type InUseError struct {
	Count int
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("plan cannot be deleted: %d members are using it", e.Count)
}
