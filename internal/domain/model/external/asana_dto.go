package external

import "strings"

// AsanaTaskRequest is the envelope of POST /tasks
type AsanaTaskRequest struct {
	Data AsanaTaskData `json:"data"`
}

// AsanaTaskData holds the fields of a task to create
type AsanaTaskData struct {
	Name     string   `json:"name"`
	Notes    string   `json:"notes,omitempty"`
	Projects []string `json:"projects,omitempty"`
	DueOn    string   `json:"due_on,omitempty"`
}

// AsanaTaskResponse wraps a single task
type AsanaTaskResponse struct {
	Data AsanaTask `json:"data"`
}

// AsanaTask is the compact task representation
type AsanaTask struct {
	GID          string `json:"gid"`
	Name         string `json:"name"`
	Notes        string `json:"notes"`
	DueOn        string `json:"due_on"`
	Completed    bool   `json:"completed"`
	PermalinkURL string `json:"permalink_url"`
}

// AsanaAddTaskRequest is the envelope of POST /sections/{gid}/addTask
type AsanaAddTaskRequest struct {
	Data AsanaAddTaskData `json:"data"`
}

// AsanaAddTaskData names the task moved into the section
type AsanaAddTaskData struct {
	Task string `json:"task"`
}

// AsanaSectionsResponse wraps the sections of a project
type AsanaSectionsResponse struct {
	Data []AsanaSection `json:"data"`
}

// AsanaSection is a project section
type AsanaSection struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// AsanaErrorResponse represents error responses from Asana
type AsanaErrorResponse struct {
	Errors []AsanaError `json:"errors"`
}

// AsanaError is a single error entry
type AsanaError struct {
	Message string `json:"message"`
	Help    string `json:"help"`
}

// Message joins every error message
func (r *AsanaErrorResponse) Message() string {
	messages := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}
	return strings.Join(messages, "; ")
}
