package gesture

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/handglow/internal/detector"
)

func TestTracker_ConfirmsPerHand(t *testing.T) {
	tr := NewTracker(3, 0)

	right := detector.PeaceLandmarks()
	left := detector.PoseLandmarks(detector.Pose{Thumb: true, Left: true})

	var obs []Observation
	for i := 0; i < 3; i++ {
		obs = tr.Observe([]detector.HandLandmarks{right, left})
	}

	if len(obs) != 2 {
		t.Fatalf("got %d observations, want 2", len(obs))
	}
	if obs[0].Key != "Right" || obs[1].Key != "Left" {
		t.Errorf("keys = %q, %q", obs[0].Key, obs[1].Key)
	}
	if !obs[0].Confirmed || obs[0].Stable != LabelPeace {
		t.Errorf("right hand = %+v, want confirmed peace", obs[0])
	}
	if !obs[1].Confirmed || obs[1].Stable != LabelThumbsUp {
		t.Errorf("left hand = %+v, want confirmed thumbs_up", obs[1])
	}
	if obs[0].TrackID == obs[1].TrackID {
		t.Error("hands share a track id")
	}
}

func TestTracker_StableTrackID(t *testing.T) {
	tr := NewTracker(0, 0)
	hand := detector.FistLandmarks()

	first := tr.Observe([]detector.HandLandmarks{hand})[0]
	if _, err := uuid.Parse(first.TrackID); err != nil {
		t.Fatalf("track id %q is not a uuid: %v", first.TrackID, err)
	}

	for i := 0; i < 5; i++ {
		next := tr.Observe([]detector.HandLandmarks{hand})[0]
		if next.TrackID != first.TrackID {
			t.Fatalf("track id changed from %s to %s", first.TrackID, next.TrackID)
		}
	}
}

func TestTracker_DropsStaleTracks(t *testing.T) {
	tr := NewTracker(2, 3)
	hand := detector.OneLandmarks()

	first := tr.Observe([]detector.HandLandmarks{hand})[0]
	for i := 0; i < 3; i++ {
		tr.Observe(nil)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() = %d after 3 empty frames, want 1", tr.Len())
	}

	tr.Observe(nil)
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d after ttl expired, want 0", tr.Len())
	}

	again := tr.Observe([]detector.HandLandmarks{hand})[0]
	if again.TrackID == first.TrackID {
		t.Error("expired track was reused")
	}
	if again.Confirmed {
		t.Error("new track should start without a confirmed gesture")
	}
}

func TestTracker_DuplicateHandedness(t *testing.T) {
	tr := NewTracker(0, 0)
	a := detector.PeaceLandmarks()
	b := detector.FistLandmarks()
	c := detector.FistLandmarks()
	c.Handedness = ""

	obs := tr.Observe([]detector.HandLandmarks{a, b, c})
	want := []string{"Right", "Right-1", "hand-2"}
	for i, o := range obs {
		if o.Key != want[i] {
			t.Errorf("obs[%d].Key = %q, want %q", i, o.Key, want[i])
		}
	}
	if tr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tr.Len())
	}
}

func TestTracker_Anchor(t *testing.T) {
	tr := NewTracker(0, 0)
	hand := detector.OpenPalmLandmarks()
	wantX, wantY := hand.PalmCenter()

	o := tr.Observe([]detector.HandLandmarks{hand})[0]
	if math.Abs(o.AnchorX-wantX) > 1e-9 || math.Abs(o.AnchorY-wantY) > 1e-9 {
		t.Errorf("anchor = (%v, %v), want (%v, %v)", o.AnchorX, o.AnchorY, wantX, wantY)
	}

	broken := detector.OpenPalmLandmarks()
	broken.Points[detector.Wrist].Y = math.NaN()
	o = tr.Observe([]detector.HandLandmarks{broken})[0]
	if o.Raw != LabelNone {
		t.Fatalf("Raw = %q, want none", o.Raw)
	}
	if o.AnchorX != 0 || o.AnchorY != 0 {
		t.Errorf("anchor for unusable hand = (%v, %v), want zero", o.AnchorX, o.AnchorY)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker(0, 0)
	tr.Observe([]detector.HandLandmarks{detector.FistLandmarks()})
	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("Len() = %d after Reset", tr.Len())
	}
}

func TestTracker_ChangedOnNewConfirmation(t *testing.T) {
	tr := NewTracker(2, 0)
	observe := func(h detector.HandLandmarks) Observation {
		return tr.Observe([]detector.HandLandmarks{h})[0]
	}

	if obs := observe(detector.FistLandmarks()); obs.Changed {
		t.Error("Changed before confirmation")
	}
	if obs := observe(detector.FistLandmarks()); !obs.Changed || obs.Stable != LabelFist {
		t.Errorf("second fist = %+v, want Changed fist", obs)
	}
	if obs := observe(detector.FistLandmarks()); obs.Changed {
		t.Error("Changed repeated for an already confirmed gesture")
	}

	observe(detector.OpenPalmLandmarks())
	if obs := observe(detector.OpenPalmLandmarks()); !obs.Changed || obs.Stable != LabelOpenHand {
		t.Errorf("open palm = %+v, want Changed open_hand", obs)
	}
}
