package component

// TreasureDrop is one weighted entry in a breakable's loot table.
type TreasureDrop struct {
	Prefab   string  `yaml:"prefab"`
	DropRate float64 `yaml:"drop_rate"`
}

type Breakable struct {
	Drops       []TreasureDrop
	Broken      bool
	DropOffsetZ float64
	Lifespan    float64
}

var BreakableComponent = NewComponent[Breakable]()
