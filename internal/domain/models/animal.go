package models

// Gender values accepted on branding records.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// StatusAlive marks a branding record as a living member of the flock.
const StatusAlive = "Alive"

// BrandingRecord is the master record of an individual animal once it has been tagged.
// Sire and dam reference other animals by branding id; the pedigree is not checked for cycles.
type BrandingRecord struct {
	ID             int64   `db:"id" json:"id"`
	TagNumber      *string `db:"tag_number" json:"tag_number"`
	BrandingID     *string `db:"branding_id" json:"branding_id"`
	BrandingDate   Date    `db:"branding_date" json:"branding_date"`
	Gender         *string `db:"gender" json:"gender"`
	BreedID        *int64  `db:"breed_id" json:"breed_id"`
	FarmID         *int64  `db:"farm_id" json:"farm_id"`
	DOB            Date    `db:"dob" json:"dob"`
	SireBrandingID *string `db:"sire_branding_id" json:"sire_branding_id"`
	DamBrandingID  *string `db:"dam_branding_id" json:"dam_branding_id"`
	Notes          *string `db:"notes" json:"notes"`
	CurrentStatus  *string `db:"current_status" json:"current_status"`
}

// Lambing is a birthing event by a dam; it produces zero or more Lamb rows.
type Lambing struct {
	ID             int64   `db:"id" json:"id"`
	DamBrandingID  *string `db:"dam_branding_id" json:"dam_branding_id"`
	SireBrandingID *string `db:"sire_branding_id" json:"sire_branding_id"`
	LambingDate    Date    `db:"lambing_date" json:"lambing_date"`
	NumberOfLambs  *int32  `db:"number_of_lambs" json:"number_of_lambs"`
	Notes          *string `db:"notes" json:"notes"`
}

// Lamb is a single offspring of exactly one Lambing.
type Lamb struct {
	ID          int64    `db:"id" json:"id"`
	TagNumber   *string  `db:"tag_number" json:"tag_number"`
	LambingID   *int64   `db:"lambing_id" json:"lambing_id"`
	BirthWeight *float64 `db:"birth_weight" json:"birth_weight"`
	BirthType   *string  `db:"birth_type" json:"birth_type"`
	VigorScore  *int32   `db:"vigor_score" json:"vigor_score"`
	Notes       *string  `db:"notes" json:"notes"`
}
