package component

// MontageDef is a named animation clip made of sections that can be played
// individually.
type MontageDef struct {
	Sections  []string  `yaml:"sections"`
	Durations []float64 `yaml:"durations"`
}

// SectionDuration returns the length of a section, 0 when it does not exist.
func (m MontageDef) SectionDuration(section string) float64 {
	for i, s := range m.Sections {
		if s == section && i < len(m.Durations) {
			return m.Durations[i]
		}
	}
	return 0
}

func (m MontageDef) HasSection(section string) bool {
	for _, s := range m.Sections {
		if s == section {
			return true
		}
	}
	return false
}

// Montages is the set of clips an actor can play, keyed by montage name.
type Montages struct {
	Defs map[string]MontageDef
}

func (m *Montages) Get(name string) (MontageDef, bool) {
	if m == nil || m.Defs == nil {
		return MontageDef{}, false
	}
	def, ok := m.Defs[name]
	return def, ok && len(def.Sections) > 0
}

var MontagesComponent = NewComponent[Montages]()

// MontagePlayer tracks the montage section currently playing on an actor.
type MontagePlayer struct {
	Montage   string
	Section   string
	Remaining float64
	Rate      float64
	Playing   bool
}

var MontagePlayerComponent = NewComponent[MontagePlayer]()
