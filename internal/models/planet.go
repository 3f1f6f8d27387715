package models

// Planet represents a celestial body in the catalog.
// The json tags are the canonical wire projection: every field listed here,
// in this order, is what list and detail responses return.
type Planet struct {
	PlanetID   uint    `json:"planet_id" gorm:"primaryKey;autoIncrement"`
	PlanetName string  `json:"planet_name" form:"planet_name" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	PlanetType string  `json:"planet_type" form:"planet_type"`
	HomeStar   string  `json:"home_star" form:"home_star"`
	Mass       float64 `json:"mass"`
	Radius     float64 `json:"radius"`
	Distance   float64 `json:"distance"`
}

// TableName overrides GORM's default pluralization.
func (Planet) TableName() string {
	return "planets"
}
