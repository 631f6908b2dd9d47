package track

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpapenbr/iracing-bests-go/pkg/model"
)

func TestIdentifyDeterministic(t *testing.T) {
	a := Identify(&model.RaceRecord{TrackName: "Silverstone Circuit"})
	b := Identify(&model.RaceRecord{TrackName: "Silverstone Circuit"})
	assert.NotNil(t, a)
	assert.Equal(t, a.TrackID, b.TrackID)
	assert.Equal(t, a.Key(), b.Key())

	// case insensitive on the id
	c := Identify(&model.RaceRecord{TrackName: "silverstone circuit"})
	assert.Equal(t, a.TrackID, c.TrackID)
}

func TestIdentifyNoTrackName(t *testing.T) {
	assert.Nil(t, Identify(&model.RaceRecord{TrackName: ""}))
	assert.Nil(t, Identify(&model.RaceRecord{TrackName: "   "}))
}

func TestLayoutKey(t *testing.T) {
	l := Identify(&model.RaceRecord{
		TrackName:   "Nürburgring",
		TrackConfig: "Grand Prix (no chicane)",
	})
	assert.NotNil(t, l)
	// every char outside [A-Za-z0-9_-] becomes an underscore
	assert.Regexp(t, `^\d+_Grand_Prix__no_chicane_$`, l.Key())
}

func TestLayoutKeyDefaultConfig(t *testing.T) {
	l := Identify(&model.RaceRecord{TrackName: "Monza"})
	assert.Regexp(t, `^\d+_default$`, l.Key())
}

func TestDifferentConfigsDifferentKeys(t *testing.T) {
	gp := Identify(&model.RaceRecord{TrackName: "Silverstone", TrackConfig: "Grand Prix"})
	natl := Identify(&model.RaceRecord{TrackName: "Silverstone", TrackConfig: "National"})
	assert.Equal(t, gp.TrackID, natl.TrackID)
	assert.NotEqual(t, gp.Key(), natl.Key())
}
