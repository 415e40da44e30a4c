package datastructure

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

// ReverseCoordinates returns a reversed copy of coords.
func ReverseCoordinates(coords []Coordinate) []Coordinate {
	rev := make([]Coordinate, len(coords))
	for i, c := range coords {
		rev[len(coords)-1-i] = c
	}
	return rev
}
