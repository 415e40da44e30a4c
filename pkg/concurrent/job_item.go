package concurrent

import (
	"github.com/lintang-b-s/ltn/pkg/datastructure"
)

// BorderSearchParam is one single-source shortcut search, starting at a border intersection.
type BorderSearchParam struct {
	Border datastructure.IntersectionID
	Index  int
}

func NewBorderSearchParam(border datastructure.IntersectionID, index int) BorderSearchParam {
	return BorderSearchParam{
		Border: border,
		Index:  index,
	}
}

type JobI interface {
	BorderSearchParam | []datastructure.RoadID
}

type Job[T JobI] struct {
	ID      int
	JobItem T
}

type JobFunc[T JobI, G any] func(job T) G
