package entity

// Task is a work item in the task tracker. GID is assigned by the tracker.
type Task struct {
	GID       string `json:"gid"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
	DueOn     Date   `json:"dueOn"`
	Completed bool   `json:"completed"`
	URL       string `json:"url,omitempty"`
}

// Section is a column of a tracker project.
type Section struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}
