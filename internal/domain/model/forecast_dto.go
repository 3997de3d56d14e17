package model

import (
	"time"

	"rainwatch/internal/domain/entity"
)

// EvaluateForecastDTO is the body of POST /forecast/evaluate
type EvaluateForecastDTO struct {
	ReferenceNow  *time.Time             `json:"referenceNow" validate:"required"`
	Samples       []entity.WeatherSample `json:"samples"`
	AdverseLabels []string               `json:"adverseLabels"`
}

// EvaluationResponse is a decision together with the per-day breakdown
type EvaluationResponse struct {
	entity.EvaluationResult
	ReferenceDate entity.Date         `json:"referenceDate"`
	AdverseLabels []string            `json:"adverseLabels"`
	Days          []entity.DaySummary `json:"days"`
}

// RegionPreview is the read-only evaluation of a region's live forecast
type RegionPreview struct {
	Region     entity.Region       `json:"region"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// RegionCheckResult is the outcome of checking one region
type RegionCheckResult struct {
	Region         string       `json:"region"`
	QualifyingDate *entity.Date `json:"qualifyingDate,omitempty"`
	TaskID         string       `json:"taskId,omitempty"`
	Duplicate      bool         `json:"duplicate"`
}

// RegionMessage is the queue payload for a region check
type RegionMessage struct {
	RequestID string        `json:"requestId"`
	Region    entity.Region `json:"region"`
}
