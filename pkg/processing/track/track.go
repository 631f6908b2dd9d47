// Package track derives stable track layout identities from race metadata.
package track

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

// Layout identifies one track configuration.
type Layout struct {
	TrackID    uint32
	TrackName  string
	ConfigName string
}

var sanitizeRegex = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Identify derives the layout identity for a race.
// Returns nil when the race carries no usable track name.
func Identify(race *model.RaceRecord) *Layout {
	name := strings.TrimSpace(race.TrackName)
	if name == "" {
		return nil
	}
	return &Layout{
		TrackID:    trackID(name),
		TrackName:  name,
		ConfigName: strings.TrimSpace(race.TrackConfig),
	}
}

// Key returns the grouping key "{trackId}_{sanitizedConfig|default}".
// The key is stable for the lifetime of one transformation run.
func (l *Layout) Key() string {
	cfg := l.ConfigName
	if cfg == "" {
		cfg = "default"
	} else {
		cfg = sanitizeRegex.ReplaceAllString(cfg, "_")
	}
	return fmt.Sprintf("%d_%s", l.TrackID, cfg)
}

// trackID hashes the track name so the same name always yields the same
// id without needing a lookup table.
func trackID(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(name)))
	return h.Sum32()
}
