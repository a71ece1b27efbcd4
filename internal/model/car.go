package model

// Car is a single record of the rental catalog.  VIN is unique across the
// catalog.  Field names on the wire follow the catalog file format, which
// mixes snake_case and camelCase.
type Car struct {
    VIN         string  `json:"vin" yaml:"vin"`
    Brand       string  `json:"brand" yaml:"brand"`
    Model       string  `json:"model" yaml:"model"`
    Type        string  `json:"type" yaml:"type"`
    PricePerDay float64 `json:"price_per_day" yaml:"price_per_day"`
    Mileage     string  `json:"mileage" yaml:"mileage"`
    FuelType    string  `json:"fuelType" yaml:"fuelType"`
    Description string  `json:"description" yaml:"description"`
    Image       string  `json:"image" yaml:"image"`
    Available   bool    `json:"available" yaml:"available"`
}

// Clone returns a copy of cars so that callers may flip availability flags
// without touching the source slice.
func Clone(cars []Car) []Car {
    out := make([]Car, len(cars))
    copy(out, cars)
    return out
}
