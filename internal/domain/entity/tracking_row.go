package entity

import "time"

// TrackingRow is one line of the completion tracking sheet. TaskID stays empty
// until the task is created.
type TrackingRow struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Notes       string     `json:"notes"`
	TaskID      string     `json:"taskId" gorm:"index"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdDate"`
	UpdatedAt   time.Time  `json:"updatedDate"`
}

// TableName overrides the gorm default
func (TrackingRow) TableName() string {
	return "tracking_rows"
}
