package plate

import "fmt"

// Type identifies a well-plate format.
type Type int

const (
	Unknown Type = iota
	Well96
	Well24
	Well12
	Well6
)

// Marker identifiers printed on each plate format.
const (
	MarkerWell96 = 10
	MarkerWell24 = 15
	MarkerWell12 = 20
	MarkerWell6  = 25
)

var markerTypes = map[int]Type{
	MarkerWell96: Well96,
	MarkerWell24: Well24,
	MarkerWell12: Well12,
	MarkerWell6:  Well6,
}

// Layout is the grid of wells on a plate.
type Layout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

var layouts = map[Type]Layout{
	Well96: {Rows: 8, Cols: 12},
	Well24: {Rows: 4, Cols: 6},
	Well12: {Rows: 3, Cols: 4},
	Well6:  {Rows: 2, Cols: 3},
}

// String returns the plate label used in reports.
func (t Type) String() string {
	switch t {
	case Well96:
		return "96well"
	case Well24:
		return "24well"
	case Well12:
		return "12well"
	case Well6:
		return "6well"
	default:
		return "Unknown Plate Type"
	}
}

// Layout returns the well grid, or a zero Layout for Unknown.
func (t Type) Layout() Layout {
	return layouts[t]
}

// Wells returns the number of wells on the plate, 0 for Unknown.
func (t Type) Wells() int {
	l := t.Layout()
	return l.Rows * l.Cols
}

// MarshalText lets Type appear as its label in JSON output.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Classify looks up the plate type for a marker identifier.
func Classify(id int) Type {
	if t, ok := markerTypes[id]; ok {
		return t
	}
	return Unknown
}

// ClassifyOptional classifies an identifier that may be absent; nil means no
// marker was ever observed.
func ClassifyOptional(id *int) Type {
	if id == nil {
		return Unknown
	}
	return Classify(*id)
}

// Plate is a classified plate together with the marker that identified it.
// MarkerID is nil when no marker was observed. Wells and Layout are derived
// from Type.
type Plate struct {
	Type     Type   `json:"plate_type"`
	MarkerID *int   `json:"marker_id"`
	Wells    int    `json:"wells"`
	Layout   Layout `json:"layout"`
}

// New classifies the plate carrying the given marker.
func New(markerID int) Plate {
	return FromMarker(&markerID)
}

// FromMarker classifies a marker identifier that may be absent.
func FromMarker(id *int) Plate {
	t := ClassifyOptional(id)
	p := Plate{Type: t, Wells: t.Wells(), Layout: t.Layout()}
	if id != nil {
		v := *id
		p.MarkerID = &v
	}
	return p
}

func (p Plate) String() string {
	if p.MarkerID == nil {
		return p.Type.String()
	}
	return fmt.Sprintf("%s (marker %d)", p.Type, *p.MarkerID)
}
