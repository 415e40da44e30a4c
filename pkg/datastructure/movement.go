package datastructure

type MovementType uint16

const (
	MOVEMENT_THRU = MovementType(iota + 1)
	MOVEMENT_RIGHT
	MOVEMENT_LEFT
	MOVEMENT_U_TURN

	MOVEMENT_UNDEFINED = MovementType(0)
)

func (iotaIdx MovementType) String() string {
	return [...]string{"undefined", "thru", "right", "left", "uturn"}[iotaIdx]
}

// Movement is a legal traversal through an intersection, from a road arriving at At into a
// road leaving At. Filters never change a movement; they are checked at query time.
type Movement struct {
	At    IntersectionID
	From  DirectedRoad
	To    DirectedRoad
	Modes TravelMode
	Type  MovementType
}
