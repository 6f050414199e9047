package models

import "time"

// LifeStage is an age band derived from an animal's date of birth.
type LifeStage string

const (
	StageLamb   LifeStage = "lamb"
	StageWeaner LifeStage = "weaner"
	StageHogget LifeStage = "hogget"
	StageAdult  LifeStage = "adult"
)

// Age band boundaries in whole days since birth. A band includes its lower
// bound and excludes the next band's lower bound.
const (
	WeanerFromDays = 90
	HoggetFromDays = 180
	AdultFromDays  = 365
)

// AgeInDays counts whole calendar days from dob to today. Both arguments are
// reduced to their calendar date first, so the time of day never matters.
func AgeInDays(dob, today time.Time) int {
	from := time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// StageForAge maps an age in days to its life stage. Negative ages (birth dates
// in the future) fall into the lamb band.
func StageForAge(days int) LifeStage {
	switch {
	case days < WeanerFromDays:
		return StageLamb
	case days < HoggetFromDays:
		return StageWeaner
	case days < AdultFromDays:
		return StageHogget
	default:
		return StageAdult
	}
}

// ClassifyAge returns the life stage of an animal born on dob as of today.
func ClassifyAge(dob, today time.Time) LifeStage {
	return StageForAge(AgeInDays(dob, today))
}
