package transport

// CreateHabitRequest is the payload for habit creation. The type defaults
// to boolean and the color to blue when omitted.
type CreateHabitRequest struct {
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"omitempty,oneof=boolean counter negative_boolean negative_counter task"`
	Color         string `json:"color" validate:"omitempty,oneof=#e57373 #64b5f6 #81c784 #ffd54f #ba68c8 #ffb74d #f06292 #4db6ac"`
	Description   string `json:"description"`
	Deadline      string `json:"deadline" validate:"omitempty"`
	TargetCounter int    `json:"target_counter" validate:"omitempty,min=1"`
}

// UpdateHabitRequest carries partial updates; absent fields stay unchanged.
type UpdateHabitRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1"`
	Color         *string `json:"color" validate:"omitempty,oneof=#e57373 #64b5f6 #81c784 #ffd54f #ba68c8 #ffb74d #f06292 #4db6ac"`
	Description   *string `json:"description"`
	Deadline      *string `json:"deadline" validate:"omitempty"`
	TargetCounter *int    `json:"target_counter" validate:"omitempty,min=1"`
}

// TrackRequest carries the ISO-8601 date (or date-time) of a track/untrack call.
type TrackRequest struct {
	Date string `json:"date" validate:"required"`
}
