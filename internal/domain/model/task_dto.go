package model

import "rainwatch/internal/domain/entity"

// CreateTaskDTO is the body of POST /tasks. DueOn defaults to today.
type CreateTaskDTO struct {
	Name  string       `json:"name" validate:"required,max=1024"`
	Notes string       `json:"notes"`
	DueOn *entity.Date `json:"dueOn"`
}

// CreateTrackingRowDTO is the body of POST /tracking
type CreateTrackingRowDTO struct {
	Title string `json:"title" validate:"required,max=1024"`
	Notes string `json:"notes"`
}

// SyncReport summarizes a completion sync run
type SyncReport struct {
	Checked   int `json:"checked"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}
