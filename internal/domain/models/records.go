package models

// AnimalReference is implemented by records that identify their animal either by
// tag number (unbranded lambs) or by branding id, never both.
type AnimalReference interface {
	AnimalRef() (tagNumber, brandingID *string)
	SetAnimalRef(tagNumber, brandingID *string)
}

// GrowthRecord is a weighing of one animal.
type GrowthRecord struct {
	ID         int64    `db:"id" json:"id"`
	TagNumber  *string  `db:"tag_number" json:"tag_number"`
	BrandingID *string  `db:"branding_id" json:"branding_id"`
	AgeDays    *int32   `db:"age_days" json:"age_days"`
	BodyWeight *float64 `db:"body_weight" json:"body_weight"`
	RecordedOn Date     `db:"recorded_on" json:"recorded_on"`
}

func (r *GrowthRecord) AnimalRef() (*string, *string) { return r.TagNumber, r.BrandingID }

func (r *GrowthRecord) SetAnimalRef(tag, branding *string) {
	r.TagNumber, r.BrandingID = tag, branding
}

// HealthEvent is a treatment, vaccination or other health observation.
type HealthEvent struct {
	ID          int64   `db:"id" json:"id"`
	TagNumber   *string `db:"tag_number" json:"tag_number"`
	BrandingID  *string `db:"branding_id" json:"branding_id"`
	EventDate   Date    `db:"event_date" json:"event_date"`
	EventType   *string `db:"event_type" json:"event_type"`
	Description *string `db:"description" json:"description"`
}

func (e *HealthEvent) AnimalRef() (*string, *string) { return e.TagNumber, e.BrandingID }

func (e *HealthEvent) SetAnimalRef(tag, branding *string) {
	e.TagNumber, e.BrandingID = tag, branding
}

// MortalityRecord records the death of an animal.
type MortalityRecord struct {
	ID           int64   `db:"id" json:"id"`
	TagNumber    *string `db:"tag_number" json:"tag_number"`
	BrandingID   *string `db:"branding_id" json:"branding_id"`
	DateOfDeath  Date    `db:"date_of_death" json:"date_of_death"`
	CauseOfDeath *string `db:"cause_of_death" json:"cause_of_death"`
}

func (m *MortalityRecord) AnimalRef() (*string, *string) { return m.TagNumber, m.BrandingID }

func (m *MortalityRecord) SetAnimalRef(tag, branding *string) {
	m.TagNumber, m.BrandingID = tag, branding
}

// WoolRecord is a fleece measurement; it always belongs to a branded animal.
type WoolRecord struct {
	ID                 int64    `db:"id" json:"id"`
	BrandingID         *string  `db:"branding_id" json:"branding_id"`
	RecordDate         Date     `db:"record_date" json:"record_date"`
	GreasyFleeceYield  *float64 `db:"greasy_fleece_yield" json:"greasy_fleece_yield"`
	CleanFleeceYield   *float64 `db:"clean_fleece_yield" json:"clean_fleece_yield"`
	StapleLength       *float64 `db:"staple_length" json:"staple_length"`
	FibreDiameter      *float64 `db:"fibre_diameter" json:"fibre_diameter"`
	MedullationPercent *float64 `db:"medullation_percent" json:"medullation_percent"`
	Crimps             *int32   `db:"crimps" json:"crimps"`
}

// Transfer records the movement of an animal from one farm to another.
type Transfer struct {
	ID           int64   `db:"id" json:"id"`
	BrandingID   *string `db:"branding_id" json:"branding_id"`
	TransferDate Date    `db:"transfer_date" json:"transfer_date"`
	FromFarmID   *int64  `db:"from_farm_id" json:"from_farm_id"`
	ToFarmID     *int64  `db:"to_farm_id" json:"to_farm_id"`
	Reason       *string `db:"reason" json:"reason"`
}
