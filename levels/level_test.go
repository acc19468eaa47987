package levels

import (
	"errors"
	"testing"
)

func TestEmbeddedLevelsLoad(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected embedded levels, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevel(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(lvl.Enemies) == 0 {
				t.Fatalf("level %s has no enemies", lvl.Name)
			}
		})
	}
}

func TestLoadLevelWithoutExtension(t *testing.T) {
	lvl, err := LoadLevel("levels/arena")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lvl.Name != "arena" || lvl.CellSize != 50 || !lvl.Walls {
		t.Fatalf("unexpected arena %+v", lvl)
	}
	if got := lvl.Enemies[0].Patrol; len(got) != 3 || got[0] != "north_gate" {
		t.Fatalf("unexpected patrol route %v", got)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		ok      bool
	}{
		{
			name: "minimal",
			doc:  "bounds: {width: 100, height: 100}\n",
			ok:   true,
		},
		{
			name:    "empty_bounds",
			doc:     "bounds: {width: 0, height: 100}\n",
			wantErr: ErrEmptyBounds,
		},
		{
			name: "unknown_patrol",
			doc: `bounds: {width: 100, height: 100}
patrol_points:
  - {name: a, position: {x: 1, y: 1}}
enemies:
  - {prefab: enemy.yaml, patrol: [a, b]}
`,
			wantErr: ErrUnknownPatrol,
		},
		{
			name: "duplicate_patrol",
			doc: `bounds: {width: 100, height: 100}
patrol_points:
  - {name: a}
  - {name: a}
`,
		},
		{
			name: "spawn_outside",
			doc: `bounds: {width: 100, height: 100}
player: {position: {x: 500, y: 0}}
`,
		},
		{
			name: "flat_obstacle",
			doc: `bounds: {width: 100, height: 100}
obstacles:
  - {position: {x: 10, y: 10}, width: 0, height: 5}
`,
		},
		{
			name: "bad_yaml",
			doc:  "bounds: [",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Parse(tc.name+".yaml", []byte(tc.doc))
			if tc.ok {
				if err != nil {
					t.Fatalf("parse: %v", err)
				}
				if lvl.Name != tc.name {
					t.Fatalf("name defaults to the file stem, got %q", lvl.Name)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
