package component

import "math"

type PickupKind int

const (
	PickupWeapon PickupKind = iota
	PickupSoul
	PickupTreasure
)

func (k PickupKind) String() string {
	switch k {
	case PickupSoul:
		return "soul"
	case PickupTreasure:
		return "treasure"
	default:
		return "weapon"
	}
}

// Item is a world pickup with a sine hover and a sphere overlap volume.
type Item struct {
	Kind          PickupKind
	State         ItemState
	Amplitude     float64
	TimeConstant  float64
	RunningTime   float64
	BaseZ         float64
	SphereRadius  float64
	SphereEnabled bool
	Sparkle       bool
	Overlapping   []uint64
}

// TransformedSin is the hover offset above BaseZ at the current running time.
func (i *Item) TransformedSin() float64 {
	if i == nil {
		return 0
	}
	return i.Amplitude * math.Sin(i.RunningTime*i.TimeConstant)
}

var ItemComponent = NewComponent[Item]()

// Soul is currency dropped by dead enemies. It sinks to DesiredZ before
// settling into its hover.
type Soul struct {
	Souls     int
	DesiredZ  float64
	DriftRate float64
}

var SoulComponent = NewComponent[Soul]()

type Treasure struct {
	Gold int
}

var TreasureComponent = NewComponent[Treasure]()
