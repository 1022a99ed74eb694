package model

// Task is the domain model for a todo entry.
// ID, Title and Due are fixed at creation; only Done changes afterwards.
type Task struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Due   *Date  `json:"due,omitempty"`
	Done  bool   `json:"done"`
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool { return t.Due != nil }
