package system

import (
	"math"
	"testing"

	"github.com/milk9111/slash/common"
)

func TestHitReactSection(t *testing.T) {
	tests := []struct {
		theta float64
		want  string
	}{
		{0, SectionFromFront},
		{-45, SectionFromFront},
		{44.9, SectionFromFront},
		{45, SectionFromRight},
		{134.9, SectionFromRight},
		{135, SectionFromBack},
		{180, SectionFromBack},
		{-180, SectionFromBack},
		{-135, SectionFromLeft},
		{-45.1, SectionFromLeft},
		{-135.1, SectionFromBack},
	}

	for _, tc := range tests {
		if got := HitReactSection(tc.theta); got != tc.want {
			t.Errorf("HitReactSection(%v) = %s, want %s", tc.theta, got, tc.want)
		}
	}
}

func TestSignedHitAngle(t *testing.T) {
	forward := common.V3(1, 0, 0)
	tests := []struct {
		name  string
		toHit common.Vec3
		want  float64
	}{
		{"front", common.V3(1, 0, 0), 0},
		{"right", common.V3(0, 1, 0), 90},
		{"left", common.V3(0, -1, 0), -90},
		{"back", common.V3(-1, 0, 0), 180},
		{"front_right", common.V3(1, 1, 0).Normalize(), 45},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SignedHitAngle(forward, tc.toHit); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDirectionalHitReact(t *testing.T) {
	r := newRig(t)
	p := r.spawnPlayer(t, common.Vec3{}, 90)
	tests := []struct {
		at   common.Vec3
		want string
	}{
		{common.V3(0, 100, 80), SectionFromFront},
		{common.V3(0, -100, 0), SectionFromBack},
		{common.V3(-100, 0, 0), SectionFromRight},
		{common.V3(100, 0, 0), SectionFromLeft},
	}

	for _, tc := range tests {
		if got := DirectionalHitReact(r.w, p, tc.at); got != tc.want {
			t.Errorf("hit from %v: got %s, want %s", tc.at, got, tc.want)
		}
	}
}
