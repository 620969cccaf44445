package models

// Plan is a multi-week training plan as exported from the source platform.
type Plan struct {
	Name  string     `json:"name"`
	Weeks []PlanWeek `json:"weeks"`
}

// PlanWeek groups the workouts of one calendar week.
type PlanWeek struct {
	Week int       `json:"week"`
	Days []PlanDay `json:"days"`
}

// PlanDay holds the workouts placed on one calendar day.
type PlanDay struct {
	Day      string    `json:"day"` // "2026-03-02"
	Workouts []Workout `json:"workouts"`
}

// Library is a named collection of standalone workouts exported together.
type Library struct {
	Name  string    `json:"name"`
	Items []Workout `json:"items"`
}
