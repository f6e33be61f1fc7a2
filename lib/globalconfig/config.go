package globalconfig

import (
	"encoding/xml"

	"github.com/tmpe/globalconfig/lib/migrate"
)

const (
	// Namespace is the XML namespace of the GlobalConfig root element.
	Namespace = "http://www.viathinksoft.de/tmpe"
	// RootElement is the name of the XML root element.
	RootElement = "GlobalConfig"

	debugSwitchCount = 6
)

// Config holds the simulation tuning values. Instances handed out by the
// lifecycle service are replaced wholesale on reload and must be treated as
// read-only.
type Config struct {
	XMLName xml.Name `xml:"http://www.viathinksoft.de/tmpe GlobalConfig" yaml:"-" toml:"-"`

	// Version is the schema version; -1 disables the version check.
	Version int `xml:"Version" yaml:"Version" toml:"Version"`

	// DebugSwitches toggles diagnostic behaviour in the simulation.
	DebugSwitches Switches `xml:"DebugSwitches" yaml:"DebugSwitches" toml:"DebugSwitches"`

	// Base lane changing cost factor on highways
	HighwayLaneChangingBaseCost float32 `xml:"HighwayLaneChangingBaseCost" yaml:"HighwayLaneChangingBaseCost" toml:"HighwayLaneChangingBaseCost"`

	// Base lane changing cost factor on city streets
	CityRoadLaneChangingBaseCost float32 `xml:"CityRoadLaneChangingBaseCost" yaml:"CityRoadLaneChangingBaseCost" toml:"CityRoadLaneChangingBaseCost"`

	// Lane changing cost base before junctions
	JunctionLaneChangingBaseCost float32 `xml:"JunctionLaneChangingBaseCost" yaml:"JunctionLaneChangingBaseCost" toml:"JunctionLaneChangingBaseCost"`

	// Congestion lane changing base cost
	CongestionLaneChangingBaseCost float32 `xml:"CongestionLaneChangingBaseCost" yaml:"CongestionLaneChangingBaseCost" toml:"CongestionLaneChangingBaseCost"`

	// Heavy vehicle lane changing cost factor
	HeavyVehicleLaneChangingCostFactor float32 `xml:"HeavyVehicleLaneChangingCostFactor" yaml:"HeavyVehicleLaneChangingCostFactor" toml:"HeavyVehicleLaneChangingCostFactor"`

	// Cost factor for changing more than one lane
	MoreThanOneLaneChangingCostFactor float32 `xml:"MoreThanOneLaneChangingCostFactor" yaml:"MoreThanOneLaneChangingCostFactor" toml:"MoreThanOneLaneChangingCostFactor"`

	// Speed-to-density balance factor; 1 considers speed only, 0 both speed and density
	SpeedToDensityBalance float32 `xml:"SpeedToDensityBalance" yaml:"SpeedToDensityBalance" toml:"SpeedToDensityBalance"`

	// Lane changing cost reduction modulo
	RandomizedLaneChangingModulo int32 `xml:"RandomizedLaneChangingModulo" yaml:"RandomizedLaneChangingModulo" toml:"RandomizedLaneChangingModulo"`

	// Artificial lane distance for u-turns
	UturnLaneDistance int32 `xml:"UturnLaneDistance" yaml:"UturnLaneDistance" toml:"UturnLaneDistance"`

	// Lane density random interval
	LaneDensityRandInterval float32 `xml:"LaneDensityRandInterval" yaml:"LaneDensityRandInterval" toml:"LaneDensityRandInterval"`

	// Lane speed random interval
	LaneSpeedRandInterval float32 `xml:"LaneSpeedRandInterval" yaml:"LaneSpeedRandInterval" toml:"LaneSpeedRandInterval"`

	// Penalty for busses not driving on bus lanes
	PublicTransportLanePenalty float32 `xml:"PublicTransportLanePenalty" yaml:"PublicTransportLanePenalty" toml:"PublicTransportLanePenalty"`

	// Reward for public transport staying on transport lane
	PublicTransportLaneReward float32 `xml:"PublicTransportLaneReward" yaml:"PublicTransportLaneReward" toml:"PublicTransportLaneReward"`

	// Maximum penalty for heavy vehicles driving on an inner lane (in %)
	HeavyVehicleMaxInnerLanePenalty float32 `xml:"HeavyVehicleMaxInnerLanePenalty" yaml:"HeavyVehicleMaxInnerLanePenalty" toml:"HeavyVehicleMaxInnerLanePenalty"`

	// Parking space search radius; used if pocket car spawning is disabled
	VicinityParkingSpaceSearchRadius float32 `xml:"VicinityParkingSpaceSearchRadius" yaml:"VicinityParkingSpaceSearchRadius" toml:"VicinityParkingSpaceSearchRadius"`

	// Randomizes parking space selection: N picks the nearest space with (N-1)/N chance, 1 always picks the nearest
	VicinityParkingSpaceSelectionRand uint32 `xml:"VicinityParkingSpaceSelectionRand" yaml:"VicinityParkingSpaceSelectionRand" toml:"VicinityParkingSpaceSelectionRand"`

	// Maximum number of parking attempts for passenger cars
	MaxParkingAttempts int32 `xml:"MaxParkingAttempts" yaml:"MaxParkingAttempts" toml:"MaxParkingAttempts"`

	// Minimum required distance between target building and parked car for using a car
	MinParkedCarToTargetBuildingDistance float32 `xml:"MinParkedCarToTargetBuildingDistance" yaml:"MinParkedCarToTargetBuildingDistance" toml:"MinParkedCarToTargetBuildingDistance"`

	// Maximum distance between citizen instance and parked vehicle before the parked car is turned into a vehicle
	MaxParkedCarInstanceSwitchDistance float32 `xml:"MaxParkedCarInstanceSwitchDistance" yaml:"MaxParkedCarInstanceSwitchDistance" toml:"MaxParkedCarInstanceSwitchDistance"`

	// Maximum distance between building and pedestrian lane
	MaxBuildingToPedestrianLaneDistance float32 `xml:"MaxBuildingToPedestrianLaneDistance" yaml:"MaxBuildingToPedestrianLaneDistance" toml:"MaxBuildingToPedestrianLaneDistance"`

	// Maximum allowed distance between home and parked car when travelling home without being forced to use the car
	MaxParkedCarDistanceToHome float32 `xml:"MaxParkedCarDistanceToHome" yaml:"MaxParkedCarDistanceToHome" toml:"MaxParkedCarDistanceToHome"`

	// Maximum incoming vehicle square distance to junction for priority signs
	MaxPriorityCheckSqrDist float32 `xml:"MaxPriorityCheckSqrDist" yaml:"MaxPriorityCheckSqrDist" toml:"MaxPriorityCheckSqrDist"`

	// Maximum junction approach time for priority signs
	MaxPriorityApproachTime float32 `xml:"MaxPriorityApproachTime" yaml:"MaxPriorityApproachTime" toml:"MaxPriorityApproachTime"`

	// Minimum speed update factor
	MinSpeedUpdateFactor float32 `xml:"MinSpeedUpdateFactor" yaml:"MinSpeedUpdateFactor" toml:"MinSpeedUpdateFactor"`

	// Maximum speed update factor
	MaxSpeedUpdateFactor float32 `xml:"MaxSpeedUpdateFactor" yaml:"MaxSpeedUpdateFactor" toml:"MaxSpeedUpdateFactor"`

	// Lower congestion threshold (per ten-thousands)
	LowerSpeedCongestionThreshold int32 `xml:"LowerSpeedCongestionThreshold" yaml:"LowerSpeedCongestionThreshold" toml:"LowerSpeedCongestionThreshold"`

	// Upper congestion threshold (per ten-thousands)
	UpperSpeedCongestionThreshold int32 `xml:"UpperSpeedCongestionThreshold" yaml:"UpperSpeedCongestionThreshold" toml:"UpperSpeedCongestionThreshold"`

	// Public transport demand increment on path-find failure
	PublicTransportDemandIncrement uint32 `xml:"PublicTransportDemandIncrement" yaml:"PublicTransportDemandIncrement" toml:"PublicTransportDemandIncrement"`

	// Public transport demand decrement on simulation step
	PublicTransportDemandDecrement uint32 `xml:"PublicTransportDemandDecrement" yaml:"PublicTransportDemandDecrement" toml:"PublicTransportDemandDecrement"`

	// Public transport demand decrement on path-find success
	PublicTransportDemandUsageDecrement uint32 `xml:"PublicTransportDemandUsageDecrement" yaml:"PublicTransportDemandUsageDecrement" toml:"PublicTransportDemandUsageDecrement"`

	// Parking space demand decrement on simulation step
	ParkingSpaceDemandDecrement uint32 `xml:"ParkingSpaceDemandDecrement" yaml:"ParkingSpaceDemandDecrement" toml:"ParkingSpaceDemandDecrement"`

	// Minimum parking space demand delta when a passenger car could be spawned
	MinSpawnedCarParkingSpaceDemandDelta int32 `xml:"MinSpawnedCarParkingSpaceDemandDelta" yaml:"MinSpawnedCarParkingSpaceDemandDelta" toml:"MinSpawnedCarParkingSpaceDemandDelta"`

	// Maximum parking space demand delta when a passenger car could be spawned
	MaxSpawnedCarParkingSpaceDemandDelta int32 `xml:"MaxSpawnedCarParkingSpaceDemandDelta" yaml:"MaxSpawnedCarParkingSpaceDemandDelta" toml:"MaxSpawnedCarParkingSpaceDemandDelta"`

	// Minimum parking space demand delta when a parking spot could be found
	MinFoundParkPosParkingSpaceDemandDelta int32 `xml:"MinFoundParkPosParkingSpaceDemandDelta" yaml:"MinFoundParkPosParkingSpaceDemandDelta" toml:"MinFoundParkPosParkingSpaceDemandDelta"`

	// Maximum parking space demand delta when a parking spot could be found
	MaxFoundParkPosParkingSpaceDemandDelta int32 `xml:"MaxFoundParkPosParkingSpaceDemandDelta" yaml:"MaxFoundParkPosParkingSpaceDemandDelta" toml:"MaxFoundParkPosParkingSpaceDemandDelta"`

	// Parking space demand increment when no parking spot could be found while trying to park
	FailedParkingSpaceDemandIncrement uint32 `xml:"FailedParkingSpaceDemandIncrement" yaml:"FailedParkingSpaceDemandIncrement" toml:"FailedParkingSpaceDemandIncrement"`

	// Parking space demand increment when no parking spot could be found while trying to spawn a parked vehicle
	FailedSpawnParkingSpaceDemandIncrement uint32 `xml:"FailedSpawnParkingSpaceDemandIncrement" yaml:"FailedSpawnParkingSpaceDemandIncrement" toml:"FailedSpawnParkingSpaceDemandIncrement"`

	// Maximum allowed reported speed difference among all lanes of one segment (in 10000ths)
	MaxSpeedDifference uint32 `xml:"MaxSpeedDifference" yaml:"MaxSpeedDifference" toml:"MaxSpeedDifference"`
}

// Default returns a Config holding the documented default of every field at
// the latest schema version.
func Default() *Config {
	return &Config{
		Version:                                migrate.LatestVersion,
		DebugSwitches:                          DefaultDebugSwitches(),
		HighwayLaneChangingBaseCost:            0.25,
		CityRoadLaneChangingBaseCost:           0.1,
		JunctionLaneChangingBaseCost:           1.5,
		CongestionLaneChangingBaseCost:         2.5,
		HeavyVehicleLaneChangingCostFactor:     1.5,
		MoreThanOneLaneChangingCostFactor:      2.5,
		SpeedToDensityBalance:                  0.75,
		RandomizedLaneChangingModulo:           250,
		UturnLaneDistance:                      2,
		LaneDensityRandInterval:                10,
		LaneSpeedRandInterval:                  20,
		PublicTransportLanePenalty:             1.5,
		PublicTransportLaneReward:              0.75,
		HeavyVehicleMaxInnerLanePenalty:        25,
		VicinityParkingSpaceSearchRadius:       256,
		VicinityParkingSpaceSelectionRand:      4,
		MaxParkingAttempts:                     10,
		MinParkedCarToTargetBuildingDistance:   256,
		MaxParkedCarInstanceSwitchDistance:     6,
		MaxBuildingToPedestrianLaneDistance:    64,
		MaxParkedCarDistanceToHome:             768,
		MaxPriorityCheckSqrDist:                225,
		MaxPriorityApproachTime:                10,
		MinSpeedUpdateFactor:                   0.05,
		MaxSpeedUpdateFactor:                   0.25,
		LowerSpeedCongestionThreshold:          6000,
		UpperSpeedCongestionThreshold:          7000,
		PublicTransportDemandIncrement:         10,
		PublicTransportDemandDecrement:         1,
		PublicTransportDemandUsageDecrement:    5,
		ParkingSpaceDemandDecrement:            1,
		MinSpawnedCarParkingSpaceDemandDelta:   -5,
		MaxSpawnedCarParkingSpaceDemandDelta:   3,
		MinFoundParkPosParkingSpaceDemandDelta: -5,
		MaxFoundParkPosParkingSpaceDemandDelta: 3,
		FailedParkingSpaceDemandIncrement:      10,
		FailedSpawnParkingSpaceDemandIncrement: 20,
		MaxSpeedDifference:                     1250,
	}
}

// DefaultDebugSwitches returns the default debug switch list, all disabled.
func DefaultDebugSwitches() Switches {
	return make(Switches, debugSwitchCount)
}

// ConfigVersion implements migrate.Versioned.
func (c *Config) ConfigVersion() int {
	return c.Version
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	if c.DebugSwitches != nil {
		cp.DebugSwitches = make(Switches, len(c.DebugSwitches))
		copy(cp.DebugSwitches, c.DebugSwitches)
	}
	return &cp
}

// DebugSwitch reports whether switch i is enabled. Out of range switches are
// reported as disabled.
func (c *Config) DebugSwitch(i int) bool {
	if i < 0 || i >= len(c.DebugSwitches) {
		return false
	}
	return c.DebugSwitches[i]
}
