package network

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
)

const osmBaseURL = "https://www.openstreetmap.org/"

// RoadOSMURL links the road to the OSM way it was cut from. Roads without an OSM way return "".
func (n *RoadNetwork) RoadOSMURL(id datastructure.RoadID) string {
	road := n.GetRoad(id)
	if road.OrigID == 0 {
		return ""
	}
	return osmBaseURL + road.OrigID.FeatureID().String()
}

func (n *RoadNetwork) IntersectionOSMURL(id datastructure.IntersectionID) string {
	in := n.GetIntersection(id)
	if in.OrigID == 0 {
		return ""
	}
	return osmBaseURL + in.OrigID.FeatureID().String()
}
