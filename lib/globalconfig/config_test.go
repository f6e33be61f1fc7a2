package globalconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmpe/globalconfig/lib/migrate"
)

func TestDefault_DocumentedValues(t *testing.T) {
	cfg := Default()

	assert.Equal(t, migrate.LatestVersion, cfg.Version)
	assert.Equal(t, Switches{false, false, false, false, false, false}, cfg.DebugSwitches)
	assert.Equal(t, float32(0.25), cfg.HighwayLaneChangingBaseCost)
	assert.Equal(t, float32(0.1), cfg.CityRoadLaneChangingBaseCost)
	assert.Equal(t, float32(0.75), cfg.SpeedToDensityBalance)
	assert.Equal(t, int32(250), cfg.RandomizedLaneChangingModulo)
	assert.Equal(t, uint32(4), cfg.VicinityParkingSpaceSelectionRand)
	assert.Equal(t, int32(-5), cfg.MinSpawnedCarParkingSpaceDemandDelta)
	assert.Equal(t, int32(6000), cfg.LowerSpeedCongestionThreshold)
	assert.Equal(t, int32(7000), cfg.UpperSpeedCongestionThreshold)
	assert.Equal(t, uint32(1250), cfg.MaxSpeedDifference)
}

func TestDefault_ReturnsFreshInstances(t *testing.T) {
	a := Default()
	b := Default()
	require.NotSame(t, a, b)

	a.DebugSwitches[0] = true
	assert.False(t, b.DebugSwitches[0], "defaults must not share the switch slice")
}

func TestConfigVersion_SatisfiesVersioned(t *testing.T) {
	var v migrate.Versioned = &Config{Version: -1}
	assert.Equal(t, -1, v.ConfigVersion())
}

func TestClone(t *testing.T) {
	orig := Default()
	orig.DebugSwitches[2] = true
	orig.MaxParkingAttempts = 42

	cp := orig.Clone()
	assert.Equal(t, orig, cp)

	cp.DebugSwitches[2] = false
	assert.True(t, orig.DebugSwitches[2])

	var nilCfg *Config
	assert.Nil(t, nilCfg.Clone())
}

func TestDebugSwitch(t *testing.T) {
	cfg := Default()
	cfg.DebugSwitches[1] = true

	assert.True(t, cfg.DebugSwitch(1))
	assert.False(t, cfg.DebugSwitch(0))
	assert.False(t, cfg.DebugSwitch(-1))
	assert.False(t, cfg.DebugSwitch(99))
}

func TestClone_KeepsEmptySwitchList(t *testing.T) {
	cfg := Default()
	cfg.DebugSwitches = Switches{}

	cp := cfg.Clone()
	require.NotNil(t, cp.DebugSwitches)
	assert.Empty(t, cp.DebugSwitches)
}
