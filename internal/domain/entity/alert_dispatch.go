package entity

import "time"

// AlertDispatch records a task created for a region and qualifying date.
// At most one exists per (Region, QualifyingDate).
type AlertDispatch struct {
	ID             string    `json:"id"`
	Region         string    `json:"region"`
	QualifyingDate Date      `json:"qualifyingDate"`
	TaskID         string    `json:"taskId"`
	CreatedAt      time.Time `json:"createdDate"`
}
