package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slash/ecs/component"
)

const stickDeadzone = 0.2

// readInput samples keyboard and the first gamepad into a player command.
// Held keys drive the axes; actions fire on the frame they are pressed.
func readInput() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Look -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Look += 1
	}

	in.Jump = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Attack = inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Dodge = inpututil.IsKeyJustPressed(ebiten.KeyK)
	in.Interact = inpututil.IsKeyJustPressed(ebiten.KeyE)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			in.MoveX = lx
			in.MoveY = -ly
		}
		if rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal); math.Abs(rx) > stickDeadzone {
			in.Look = rx
		}

		in.Jump = in.Jump || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Attack = in.Attack || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		in.Dodge = in.Dodge || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		in.Interact = in.Interact || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
	}
	return in
}
