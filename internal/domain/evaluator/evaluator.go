// Package evaluator decides, from a multi-day forecast, the earliest dry day
// beyond the blackout window of today and tomorrow.
//
// An Evaluator holds only an immutable label set, so one value can be shared
// by concurrent callers.
package evaluator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"rainwatch/internal/domain/entity"
)

// ErrInvalidInput is returned when the reference instant is missing.
var ErrInvalidInput = errors.New("invalid input")

// DefaultAdverseLabels are used when an Evaluator is built without labels.
var DefaultAdverseLabels = []string{"rain"}

// blackoutDays is the number of days after the reference day that are
// excluded together with it.
const blackoutDays = 1

// Evaluator matches sample conditions against a closed set of adverse labels.
type Evaluator struct {
	adverse map[string]struct{}
}

// New builds an Evaluator for the given labels, matched case-insensitively
// and exactly. Blank labels are ignored; no usable label means
// DefaultAdverseLabels.
func New(labels ...string) *Evaluator {
	adverse := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if key := normalize(label); key != "" {
			adverse[key] = struct{}{}
		}
	}
	if len(adverse) == 0 {
		for _, label := range DefaultAdverseLabels {
			adverse[label] = struct{}{}
		}
	}
	return &Evaluator{adverse: adverse}
}

var defaultEvaluator = New()

// Evaluate runs the default evaluator, which treats only "rain" as adverse.
func Evaluate(samples []entity.WeatherSample, referenceNow time.Time) (entity.EvaluationResult, error) {
	return defaultEvaluator.Evaluate(samples, referenceNow)
}

// Labels returns the adverse labels in sorted order.
func (e *Evaluator) Labels() []string {
	labels := make([]string, 0, len(e.adverse))
	for label := range e.adverse {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// IsAdverse reports whether any of conditions is an adverse label.
func (e *Evaluator) IsAdverse(conditions []string) bool {
	for _, condition := range conditions {
		if _, ok := e.adverse[normalize(condition)]; ok {
			return true
		}
	}
	return false
}

// Summarize groups samples by calendar day in each timestamp's own location
// and returns one summary per day in ascending order. Samples with a zero
// timestamp are dropped.
func (e *Evaluator) Summarize(samples []entity.WeatherSample) []entity.DaySummary {
	byDate := make(map[entity.Date]*entity.DaySummary)
	for _, sample := range samples {
		if sample.Timestamp.IsZero() {
			continue
		}
		date := entity.DateOf(sample.Timestamp)
		day, ok := byDate[date]
		if !ok {
			day = &entity.DaySummary{Date: date}
			byDate[date] = day
		}
		day.Samples++
		if e.IsAdverse(sample.Conditions) {
			day.HasAdverseWeather = true
		}
	}

	days := make([]entity.DaySummary, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}
	slices.SortFunc(days, func(a, b entity.DaySummary) int {
		return a.Date.Compare(b.Date)
	})
	return days
}

// Evaluate returns the earliest day strictly after the day following
// referenceNow that has no adverse sample. A zero referenceNow is
// ErrInvalidInput.
func (e *Evaluator) Evaluate(samples []entity.WeatherSample, referenceNow time.Time) (entity.EvaluationResult, error) {
	if referenceNow.IsZero() {
		return entity.EvaluationResult{}, fmt.Errorf("%w: reference instant is required", ErrInvalidInput)
	}

	lastExcluded := entity.DateOf(referenceNow).AddDays(blackoutDays)
	for _, day := range e.Summarize(samples) {
		if day.HasAdverseWeather || !day.Date.After(lastExcluded) {
			continue
		}
		date := day.Date
		return entity.EvaluationResult{HasQualifyingDay: true, QualifyingDate: &date}, nil
	}

	return entity.EvaluationResult{}, nil
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
