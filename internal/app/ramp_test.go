package app

import (
	"math"
	"testing"
)

func TestRamp_Present(t *testing.T) {
	var r Ramp
	for i := 1; i <= 40; i++ {
		got, expired := r.Next(true, 1.5)
		if got != 1.5 || expired {
			t.Fatalf("frame %d: Next() = %v, %v, want 1.5, false", i, got, expired)
		}
		if want := min(i, RampFrames); r.Active() != want {
			t.Fatalf("frame %d: Active() = %d, want %d", i, r.Active(), want)
		}
	}
}

func TestRamp_FadeOut(t *testing.T) {
	var r Ramp
	for i := 0; i < 10; i++ {
		r.Next(true, 1)
	}

	for i := 9; i > 0; i-- {
		got, expired := r.Next(false, 1)
		if expired {
			t.Fatalf("expired early with %d frames left", i)
		}
		if want := float64(i) / RampFrames; math.Abs(got-want) > 1e-9 {
			t.Fatalf("fade at %d = %v, want %v", i, got, want)
		}
	}

	got, expired := r.Next(false, 1)
	if got != 0 || !expired {
		t.Errorf("last fade frame = %v, %v, want 0, true", got, expired)
	}

	got, expired = r.Next(false, 1)
	if got != 0 || expired {
		t.Errorf("idle frame = %v, %v, want 0, false", got, expired)
	}
}

func TestRamp_FadeCappedByConfigured(t *testing.T) {
	var r Ramp
	for i := 0; i < RampFrames; i++ {
		r.Next(true, 0.2)
	}
	got, _ := r.Next(false, 0.2)
	if got != 0.2 {
		t.Errorf("fade = %v, want configured 0.2", got)
	}
}

func TestRamp_LongestFade(t *testing.T) {
	var r Ramp
	for i := 0; i < 100; i++ {
		r.Next(true, 1)
	}
	frames := 0
	for {
		frames++
		if _, expired := r.Next(false, 1); expired {
			break
		}
	}
	if frames != RampFrames {
		t.Errorf("fade lasted %d frames, want %d", frames, RampFrames)
	}
}

func TestRamp_Reset(t *testing.T) {
	var r Ramp
	r.Next(true, 1)
	r.Next(true, 1)
	r.Reset()
	if r.Active() != 0 {
		t.Errorf("Active() = %d after Reset", r.Active())
	}
	if _, expired := r.Next(false, 1); expired {
		t.Error("reset ramp reported expiry")
	}
}
