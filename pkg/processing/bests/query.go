package bests

import (
	"slices"
	"strings"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

// Pure read-only queries over the hierarchy. The structure is small and
// rebuilt per transformation, so plain scans are good enough.

// AllRecords flattens the hierarchy into a slice sorted by record id.
func AllRecords(db *model.DriverBests) []*model.PersonalBestRecord {
	ret := make([]*model.PersonalBestRecord, 0)
	for _, sb := range db.Series {
		for _, lb := range sb.Layouts {
			for _, rec := range lb.Records {
				ret = append(ret, rec)
			}
		}
	}
	slices.SortFunc(ret, func(a, b *model.PersonalBestRecord) int {
		return strings.Compare(a.ID, b.ID)
	})
	return ret
}

// BestForCarOnTrack returns the best record for the car on the given
// track across all layouts and series, or nil.
func BestForCarOnTrack(db *model.DriverBests, carName, trackName string) *model.PersonalBestRecord {
	var best *model.PersonalBestRecord
	for _, rec := range AllRecords(db) {
		if rec.CarName != carName || rec.TrackName != trackName {
			continue
		}
		if best == nil || rec.FastestLapMs < best.FastestLapMs {
			best = rec
		}
	}
	return best
}

// RecordsForCar returns all records of the given car, fastest first.
func RecordsForCar(db *model.DriverBests, carName string) []*model.PersonalBestRecord {
	return filterRecords(db, func(rec *model.PersonalBestRecord) bool {
		return rec.CarName == carName
	})
}

// RecordsForTrack returns all records on the given track, fastest first.
func RecordsForTrack(db *model.DriverBests, trackName string) []*model.PersonalBestRecord {
	return filterRecords(db, func(rec *model.PersonalBestRecord) bool {
		return rec.TrackName == trackName
	})
}

func filterRecords(
	db *model.DriverBests,
	keep func(*model.PersonalBestRecord) bool,
) []*model.PersonalBestRecord {
	ret := make([]*model.PersonalBestRecord, 0)
	for _, rec := range AllRecords(db) {
		if keep(rec) {
			ret = append(ret, rec)
		}
	}
	slices.SortStableFunc(ret, func(a, b *model.PersonalBestRecord) int {
		switch {
		case a.FastestLapMs < b.FastestLapMs:
			return -1
		case a.FastestLapMs > b.FastestLapMs:
			return 1
		default:
			return 0
		}
	})
	return ret
}
