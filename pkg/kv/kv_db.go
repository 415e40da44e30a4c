package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/ltn/pkg/datastructure"
	"github.com/lintang-b-s/ltn/pkg/filter"
	"github.com/lintang-b-s/ltn/pkg/neighborhood"
	"github.com/uber/h3-go/v4"
)

var (
	ErrFiltersNotFound = errors.New("filters not found")
)

const (
	filtersPrefix = "filters:"
	h3Prefix      = "h3:"
	h3Resolution  = 9
)

// FilterRepository stores the modal filters of neighborhoods in badger, indexed by the h3 cell of
// the neighborhood centroid.
type FilterRepository struct {
	db *badger.DB
}

func NewFilterRepository(db *badger.DB) *FilterRepository {
	return &FilterRepository{db}
}

func filtersKey(id string) []byte {
	return []byte(filtersPrefix + id)
}

func h3Key(cell h3.Cell, id string) []byte {
	return []byte(h3Prefix + cell.String() + ":" + id)
}

func h3CellPrefix(cell h3.Cell) []byte {
	return []byte(h3Prefix + cell.String() + ":")
}

// SaveFilters stores the perimeter and filters of neighborhood id, replacing an older record.
func (k *FilterRepository) SaveFilters(ctx context.Context, id string, perimeter neighborhood.Perimeter,
	centroid datastructure.Coordinate, filters *filter.ModalFilters) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled")
	default:
	}

	cell := h3.LatLngToCell(h3.NewLatLng(centroid.Lat, centroid.Lon), h3Resolution)

	rec := newFilterRecord(id, perimeter, filters)
	rec.Lat, rec.Lon = centroid.Lat, centroid.Lon
	rec.H3Cell = cell.String()
	rec.UpdatedAt = time.Now().Unix()

	val, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode filters of %s: %w", id, err)
	}

	err = k.db.Update(func(txn *badger.Txn) error {
		old, err := k.getRecord(txn, id)
		if err == nil && old.H3Cell != rec.H3Cell {
			if err := txn.Delete([]byte(h3Prefix + old.H3Cell + ":" + id)); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, ErrFiltersNotFound) {
			return err
		}

		if err := txn.Set(filtersKey(id), val); err != nil {
			return err
		}
		return txn.Set(h3Key(cell, id), []byte{})
	})
	if err != nil {
		return fmt.Errorf("save filters of %s: %w", id, err)
	}

	log.Printf("saved %d filters of neighborhood %s", filters.Len(), id)
	return nil
}

func (k *FilterRepository) getRecord(txn *badger.Txn, id string) (filterRecord, error) {
	item, err := txn.Get(filtersKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return filterRecord{}, ErrFiltersNotFound
	}
	if err != nil {
		return filterRecord{}, err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return filterRecord{}, err
	}
	return decodeRecord(val)
}

// LoadFilters returns the stored perimeter and filters of neighborhood id.
func (k *FilterRepository) LoadFilters(ctx context.Context, id string) (neighborhood.Perimeter, *filter.ModalFilters, error) {
	select {
	case <-ctx.Done():
		return neighborhood.Perimeter{}, nil, fmt.Errorf("context cancelled")
	default:
	}

	var rec filterRecord
	err := k.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = k.getRecord(txn, id)
		return err
	})
	if err != nil {
		return neighborhood.Perimeter{}, nil, fmt.Errorf("load filters of %s: %w", id, err)
	}
	return rec.perimeter(), rec.modalFilters(), nil
}

func (k *FilterRepository) DeleteFilters(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled")
	default:
	}

	return k.db.Update(func(txn *badger.Txn) error {
		rec, err := k.getRecord(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(h3Prefix + rec.H3Cell + ":" + id)); err != nil {
			return err
		}
		return txn.Delete(filtersKey(id))
	})
}

// NeighborhoodsNear returns the ids of stored neighborhoods whose centroid lies within roughly
// searchRadiusKm of (lat, lon), sorted.
func (k *FilterRepository) NeighborhoodsNear(ctx context.Context, lat, lon, searchRadiusKm float64) ([]string, error) {
	cells := kRingIndexesArea(lat, lon, searchRadiusKm)
	ids := make([]string, 0)

	err := k.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for _, cell := range cells {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled")
			default:
			}

			prefix := h3CellPrefix(cell)
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				key := string(it.Item().KeyCopy(nil))
				ids = append(ids, strings.TrimPrefix(key, string(prefix)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(ids)
	return ids, nil
}

// maxSearchRadiusKm bounds the disk; larger or non-finite radii are clamped to it.
const maxSearchRadiusKm = 50.0

func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	if !(searchRadiusKm > 0) {
		searchRadiusKm = 0
	}
	searchRadiusKm = math.Min(searchRadiusKm, maxSearchRadiusKm)

	home := h3.NewLatLng(lat, lon)
	origin := h3.LatLngToCell(home, h3Resolution)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

func (k *FilterRepository) Close() {
	k.db.Close()
}
