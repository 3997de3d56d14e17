package entity

import "time"

// WeatherSample is one timestamped forecast point. Conditions holds the
// provider's categorical labels and may be empty.
type WeatherSample struct {
	Timestamp  time.Time `json:"timestamp"`
	Conditions []string  `json:"conditions"`
}

// DaySummary folds every sample of one calendar day.
type DaySummary struct {
	Date              Date `json:"date"`
	HasAdverseWeather bool `json:"hasAdverseWeather"`
	Samples           int  `json:"samples"`
}

// EvaluationResult is the decision for one forecast snapshot. QualifyingDate
// is nil unless HasQualifyingDay is true.
type EvaluationResult struct {
	HasQualifyingDay bool  `json:"hasQualifyingDay"`
	QualifyingDate   *Date `json:"qualifyingDate,omitempty"`
}
