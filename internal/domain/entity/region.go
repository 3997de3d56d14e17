package entity

// Region is a monitored location. Name identifies it in task titles and
// dispatch records.
type Region struct {
	Name        string  `json:"name" mapstructure:"name" validate:"required"`
	City        string  `json:"city" mapstructure:"city" validate:"required"`
	Latitude    float64 `json:"latitude" mapstructure:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" mapstructure:"longitude" validate:"gte=-180,lte=180"`
	Description string  `json:"description" mapstructure:"description"`
}
