package models

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// IsZero reports whether the point carries no coordinate.
func (g GeoPoint) IsZero() bool {
	return g.Latitude == 0 && g.Longitude == 0
}
