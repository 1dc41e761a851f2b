package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the set of controls held or pressed during one tick.
type Input struct {
	Forward, Backward       bool
	TurnLeft, TurnRight     bool
	StrafeLeft, StrafeRight bool
	Up, Down                bool
	PitchUp, PitchDown      bool

	// Edge-triggered: true only on the tick the key goes down.
	WidenFOV, NarrowFOV bool
	Snapshot            bool
	ToggleRecording     bool
}

// ReadInput polls the keyboard.
//
//	W/Up, S/Down        move
//	A/Left, D/Right     turn
//	Q, E                strafe
//	PageUp, PageDown    raise / lower the eye
//	Home, End           pitch
//	+, -                field of view
//	F12                 snapshot
//	F11                 start / stop recording
func ReadInput() Input {
	pressed := ebiten.IsKeyPressed
	just := inpututil.IsKeyJustPressed

	return Input{
		Forward:     pressed(ebiten.KeyW) || pressed(ebiten.KeyUp),
		Backward:    pressed(ebiten.KeyS) || pressed(ebiten.KeyDown),
		TurnLeft:    pressed(ebiten.KeyA) || pressed(ebiten.KeyLeft),
		TurnRight:   pressed(ebiten.KeyD) || pressed(ebiten.KeyRight),
		StrafeLeft:  pressed(ebiten.KeyQ),
		StrafeRight: pressed(ebiten.KeyE),
		Up:          pressed(ebiten.KeyPageUp),
		Down:        pressed(ebiten.KeyPageDown),
		PitchUp:     pressed(ebiten.KeyHome),
		PitchDown:   pressed(ebiten.KeyEnd),

		WidenFOV:        just(ebiten.KeyEqual) || just(ebiten.KeyKPAdd),
		NarrowFOV:       just(ebiten.KeyMinus) || just(ebiten.KeyKPSubtract),
		Snapshot:        just(ebiten.KeyF12),
		ToggleRecording: just(ebiten.KeyF11),
	}
}
