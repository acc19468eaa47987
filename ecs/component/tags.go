package component

// Tag names carried by actors.
const (
	TagEnemy            = "Enemy"
	TagEngageableTarget = "EngageableTarget"
	TagSlashCharacter   = "SlashCharacter"
	TagDead             = "Dead"
)

// Tags is the actor tag set.
type Tags struct {
	Names []string
}

func (t *Tags) Has(name string) bool {
	if t == nil {
		return false
	}
	for _, n := range t.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Add appends name unless already present.
func (t *Tags) Add(name string) {
	if t == nil || t.Has(name) {
		return
	}
	t.Names = append(t.Names, name)
}

var TagsComponent = NewComponent[Tags]()

type PatrolPointTag struct{}

var PatrolPointTagComponent = NewComponent[PatrolPointTag]()
