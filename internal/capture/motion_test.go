package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMotionDetector_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      MotionConfig
		wantThr  float64
		wantBlur int
	}{
		{"zero config", MotionConfig{}, 1.0, 21},
		{"custom", MotionConfig{Threshold: 3, BlurSize: 11}, 3, 11},
		{"even blur rounds up", MotionConfig{BlurSize: 8}, 1.0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := NewMotionDetector(tt.cfg)
			defer md.Close()

			if md.Threshold() != tt.wantThr {
				t.Errorf("Threshold() = %v, want %v", md.Threshold(), tt.wantThr)
			}
			if md.cfg.BlurSize != tt.wantBlur {
				t.Errorf("BlurSize = %d, want %d", md.cfg.BlurSize, tt.wantBlur)
			}
			if md.seen {
				t.Error("new detector should have no baseline")
			}
		})
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(DefaultMotionConfig())
	defer md.Close()

	md.SetThreshold(5)
	md.SetThreshold(-1)
	md.SetThreshold(0)
	if md.Threshold() != 5 {
		t.Errorf("Threshold() = %v, want 5", md.Threshold())
	}
}

func TestMotionDetector_Detect(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	black := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md := NewMotionDetector(DefaultMotionConfig())
	defer md.Close()

	if moved, pct := md.Detect(&black); moved || pct != 0 {
		t.Errorf("baseline frame = (%v, %v), want (false, 0)", moved, pct)
	}
	if moved, pct := md.Detect(&black); moved {
		t.Errorf("identical frames detected motion (%v%%)", pct)
	}

	moved, pct := md.Detect(&white)
	if !moved || pct < 50 {
		t.Errorf("black to white = (%v, %v), want motion over 50%%", moved, pct)
	}

	md.Reset()
	if moved, _ := md.Detect(&black); moved {
		t.Error("first frame after Reset should only set the baseline")
	}
}

func TestMotionDetector_SizeChangeResetsBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	small := gocv.NewMatWithSize(60, 80, gocv.MatTypeCV8UC3)
	defer small.Close()
	large := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer large.Close()
	large.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md := NewMotionDetector(DefaultMotionConfig())
	defer md.Close()

	md.Detect(&small)
	if moved, _ := md.Detect(&large); moved {
		t.Error("a resolution change should rebase rather than report motion")
	}
}

func TestMotionDetector_NilFrame(t *testing.T) {
	md := NewMotionDetector(DefaultMotionConfig())
	defer md.Close()

	if moved, pct := md.Detect(nil); moved || pct != 0 {
		t.Errorf("Detect(nil) = (%v, %v)", moved, pct)
	}
	md.Close()
	md.Close()
}

func TestMotionDetector_CloseFreesBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	black := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer black.Close()
	white := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md := NewMotionDetector(DefaultMotionConfig())
	md.Detect(&black)
	md.Close()

	if !md.closed || md.seen {
		t.Errorf("after Close closed=%v seen=%v", md.closed, md.seen)
	}
	// The baseline is gone and nothing new is allocated.
	if moved, pct := md.Detect(&white); moved || pct != 0 {
		t.Errorf("Detect after Close = (%v, %v), want (false, 0)", moved, pct)
	}
	md.Close()
}
