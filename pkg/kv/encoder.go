package kv

import (
	"sort"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
)

type pointFilterRecord struct {
	Road      int32
	DistAlong float64
}

type diagonalFilterRecord struct {
	Intersection int32
	Index        int32
	Group1       []int32
	Group2       []int32
}

// filterRecord is the stored form of the filters of one neighborhood.
type filterRecord struct {
	ID              string
	Perimeter       []int32
	Seed            int32
	Lat             float64
	Lon             float64
	H3Cell          string
	PointFilters    []pointFilterRecord
	DiagonalFilters []diagonalFilterRecord
	UpdatedAt       int64
}

const noSeed = int32(-1)

func toInt32s(roads []datastructure.RoadID) []int32 {
	out := make([]int32, len(roads))
	for i, r := range roads {
		out[i] = int32(r)
	}
	return out
}

func toRoadIDs(ids []int32) []datastructure.RoadID {
	out := make([]datastructure.RoadID, len(ids))
	for i, r := range ids {
		out[i] = datastructure.RoadID(r)
	}
	return out
}

func newFilterRecord(id string, perimeter neighborhood.Perimeter, filters *filter.ModalFilters) filterRecord {
	rec := filterRecord{
		ID:              id,
		Perimeter:       toInt32s(perimeter.Roads),
		Seed:            noSeed,
		PointFilters:    make([]pointFilterRecord, 0, len(filters.Roads)),
		DiagonalFilters: make([]diagonalFilterRecord, 0, len(filters.Intersections)),
	}
	if perimeter.Seed != nil {
		rec.Seed = int32(*perimeter.Seed)
	}

	for r, dist := range filters.Roads {
		rec.PointFilters = append(rec.PointFilters, pointFilterRecord{Road: int32(r), DistAlong: dist})
	}
	sort.Slice(rec.PointFilters, func(a, b int) bool { return rec.PointFilters[a].Road < rec.PointFilters[b].Road })

	for i, df := range filters.Intersections {
		rec.DiagonalFilters = append(rec.DiagonalFilters, diagonalFilterRecord{
			Intersection: int32(i),
			Index:        int32(df.Index),
			Group1:       toInt32s(df.Group1),
			Group2:       toInt32s(df.Group2),
		})
	}
	sort.Slice(rec.DiagonalFilters, func(a, b int) bool {
		return rec.DiagonalFilters[a].Intersection < rec.DiagonalFilters[b].Intersection
	})
	return rec
}

func (rec filterRecord) perimeter() neighborhood.Perimeter {
	p := neighborhood.NewPerimeter(toRoadIDs(rec.Perimeter))
	if rec.Seed != noSeed {
		p = p.WithSeed(datastructure.IntersectionID(rec.Seed))
	}
	return p
}

func (rec filterRecord) modalFilters() *filter.ModalFilters {
	mf := filter.NewModalFilters()
	for _, pf := range rec.PointFilters {
		mf.Roads[datastructure.RoadID(pf.Road)] = pf.DistAlong
	}
	for _, df := range rec.DiagonalFilters {
		i := datastructure.IntersectionID(df.Intersection)
		mf.Intersections[i] = filter.DiagonalFilter{
			Intersection: i,
			Index:        int(df.Index),
			Group1:       toRoadIDs(df.Group1),
			Group2:       toRoadIDs(df.Group2),
		}
	}
	return mf
}

func encodeRecord(rec filterRecord) ([]byte, error) {
	encoded, err := binary.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return compress(encoded)
}

func decodeRecord(bbCompressed []byte) (filterRecord, error) {
	var rec filterRecord
	bb, err := decompress(bbCompressed)
	if err != nil {
		return rec, err
	}
	err = binary.Unmarshal(bb, &rec)
	return rec, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
