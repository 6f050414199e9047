package models

import "time"

// MonthlySummary is the operational snapshot shown on the dashboard.
type MonthlySummary struct {
	Lambs              int64 `json:"lambs" bson:"lambs"`
	Weaners            int64 `json:"weaners" bson:"weaners"`
	Hoggets            int64 `json:"hoggets" bson:"hoggets"`
	Adults             int64 `json:"adults" bson:"adults"`
	DeathsThisMonth    int64 `json:"deathsThisMonth" bson:"deaths_this_month"`
	TotalDeaths        int64 `json:"totalDeaths" bson:"total_deaths"`
	TransfersThisMonth int64 `json:"transfersThisMonth" bson:"transfers_this_month"`
}

// FarmPopulation counts the living branded animals of one farm by life stage and gender.
type FarmPopulation struct {
	FarmName string `json:"farm_name" bson:"farm_name"`
	Lambs    int64  `json:"lambs" bson:"lambs"`
	Weaners  int64  `json:"weaners" bson:"weaners"`
	Hoggets  int64  `json:"hoggets" bson:"hoggets"`
	Adults   int64  `json:"adults" bson:"adults"`
	Males    int64  `json:"males" bson:"males"`
	Females  int64  `json:"females" bson:"females"`
}

// CensusEntry is one living branded animal as seen by the population summary.
type CensusEntry struct {
	FarmName string
	Gender   *string
	DOB      *time.Time
}

// FlockReport is the periodic digest archived and delivered by the reporting job.
type FlockReport struct {
	GeneratedAt time.Time        `bson:"generated_at" json:"generated_at"`
	PeriodStart time.Time        `bson:"period_start" json:"period_start"`
	Summary     MonthlySummary   `bson:"summary" json:"summary"`
	Population  []FarmPopulation `bson:"population" json:"population"`
}
