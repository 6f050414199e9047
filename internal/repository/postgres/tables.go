package postgres

import (
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
)

var FarmsTable = Table[models.Farm]{
	Name:    "farms",
	Columns: []string{"name", "location", "manager_name", "contact_info"},
	OrderBy: "id DESC",
	Values: func(f *models.Farm) []any {
		return []any{f.Name, f.Location, f.ManagerName, f.ContactInfo}
	},
}

var BreedsTable = Table[models.Breed]{
	Name:    "breeds",
	Columns: []string{"name", "description"},
	OrderBy: "id DESC",
	Values: func(b *models.Breed) []any {
		return []any{b.Name, b.Description}
	},
}

var BrandingTable = Table[models.BrandingRecord]{
	Name: "branding",
	Columns: []string{
		"tag_number", "branding_id", "branding_date", "gender", "breed_id", "farm_id",
		"dob", "sire_branding_id", "dam_branding_id", "notes", "current_status",
	},
	OrderBy: "id DESC",
	Values: func(b *models.BrandingRecord) []any {
		return []any{
			b.TagNumber, b.BrandingID, b.BrandingDate, b.Gender, b.BreedID, b.FarmID,
			b.DOB, b.SireBrandingID, b.DamBrandingID, b.Notes, b.CurrentStatus,
		}
	},
}

var LambingsTable = Table[models.Lambing]{
	Name:    "lambings",
	Columns: []string{"dam_branding_id", "sire_branding_id", "lambing_date", "number_of_lambs", "notes"},
	OrderBy: "lambing_date DESC NULLS LAST, id DESC",
	Values: func(l *models.Lambing) []any {
		return []any{l.DamBrandingID, l.SireBrandingID, l.LambingDate, l.NumberOfLambs, l.Notes}
	},
}

var LambsTable = Table[models.Lamb]{
	Name:    "lambs",
	Columns: []string{"tag_number", "lambing_id", "birth_weight", "birth_type", "vigor_score", "notes"},
	OrderBy: "id DESC",
	Values: func(l *models.Lamb) []any {
		return []any{l.TagNumber, l.LambingID, l.BirthWeight, l.BirthType, l.VigorScore, l.Notes}
	},
}

var GrowthTable = Table[models.GrowthRecord]{
	Name:    "growth",
	Columns: []string{"tag_number", "branding_id", "age_days", "body_weight", "recorded_on"},
	OrderBy: "recorded_on DESC NULLS LAST, id DESC",
	Values: func(g *models.GrowthRecord) []any {
		return []any{g.TagNumber, g.BrandingID, g.AgeDays, g.BodyWeight, g.RecordedOn}
	},
}

var HealthEventsTable = Table[models.HealthEvent]{
	Name:    "healthevents",
	Columns: []string{"tag_number", "branding_id", "event_date", "event_type", "description"},
	OrderBy: "event_date DESC NULLS LAST, id DESC",
	Values: func(h *models.HealthEvent) []any {
		return []any{h.TagNumber, h.BrandingID, h.EventDate, h.EventType, h.Description}
	},
}

var WoolRecordsTable = Table[models.WoolRecord]{
	Name: "woolrecords",
	Columns: []string{
		"branding_id", "record_date", "greasy_fleece_yield", "clean_fleece_yield",
		"staple_length", "fibre_diameter", "medullation_percent", "crimps",
	},
	OrderBy: "record_date DESC NULLS LAST, id DESC",
	Values: func(w *models.WoolRecord) []any {
		return []any{
			w.BrandingID, w.RecordDate, w.GreasyFleeceYield, w.CleanFleeceYield,
			w.StapleLength, w.FibreDiameter, w.MedullationPercent, w.Crimps,
		}
	},
}

var MortalityTable = Table[models.MortalityRecord]{
	Name:    "mortality",
	Columns: []string{"tag_number", "branding_id", "date_of_death", "cause_of_death"},
	OrderBy: "date_of_death DESC NULLS LAST, id DESC",
	Values: func(m *models.MortalityRecord) []any {
		return []any{m.TagNumber, m.BrandingID, m.DateOfDeath, m.CauseOfDeath}
	},
}

var TransfersTable = Table[models.Transfer]{
	Name:    "transfers",
	Columns: []string{"branding_id", "transfer_date", "from_farm_id", "to_farm_id", "reason"},
	OrderBy: "transfer_date DESC NULLS LAST, id DESC",
	Values: func(t *models.Transfer) []any {
		return []any{t.BrandingID, t.TransferDate, t.FromFarmID, t.ToFarmID, t.Reason}
	},
}

// Repositories bundles one Resource per table.
type Repositories struct {
	Farms        *Resource[models.Farm]
	Breeds       *Resource[models.Breed]
	Branding     *Resource[models.BrandingRecord]
	Lambings     *Resource[models.Lambing]
	Lambs        *Resource[models.Lamb]
	Growth       *Resource[models.GrowthRecord]
	HealthEvents *Resource[models.HealthEvent]
	WoolRecords  *Resource[models.WoolRecord]
	Mortality    *Resource[models.MortalityRecord]
	Transfers    *Resource[models.Transfer]
}

// NewRepositories builds every resource repository on the shared pool.
func NewRepositories(db Querier, logger *zap.Logger) *Repositories {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repositories{
		Farms:        NewResource(db, FarmsTable, logger),
		Breeds:       NewResource(db, BreedsTable, logger),
		Branding:     NewResource(db, BrandingTable, logger),
		Lambings:     NewResource(db, LambingsTable, logger),
		Lambs:        NewResource(db, LambsTable, logger),
		Growth:       NewResource(db, GrowthTable, logger),
		HealthEvents: NewResource(db, HealthEventsTable, logger),
		WoolRecords:  NewResource(db, WoolRecordsTable, logger),
		Mortality:    NewResource(db, MortalityTable, logger),
		Transfers:    NewResource(db, TransfersTable, logger),
	}
}
