package models

// Farm is a physical holding that animals are branded into and transferred between.
type Farm struct {
	ID          int64   `db:"id" json:"id"`
	Name        *string `db:"name" json:"name"`
	Location    *string `db:"location" json:"location"`
	ManagerName *string `db:"manager_name" json:"manager_name"`
	ContactInfo *string `db:"contact_info" json:"contact_info"`
}

// Breed is a sheep breed referenced by branding records.
type Breed struct {
	ID          int64   `db:"id" json:"id"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}
