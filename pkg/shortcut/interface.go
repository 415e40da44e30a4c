package shortcut

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/network"
)

type MovementGraph interface {
	Network() *network.RoadNetwork
	Outgoing(from datastructure.DirectedRoad, mode datastructure.TravelMode) []datastructure.Movement
}
