package gesture

import "testing"

func feed(s *Stabilizer, labels ...Label) (Label, bool) {
	var (
		got Label
		ok  bool
	)
	for _, l := range labels {
		got, ok = s.Update(l)
	}
	return got, ok
}

func repeat(l Label, n int) []Label {
	out := make([]Label, n)
	for i := range out {
		out[i] = l
	}
	return out
}

func TestStabilizer_ConfirmsFullWindow(t *testing.T) {
	s := NewStabilizer(DefaultWindow)

	for i := 1; i <= DefaultWindow; i++ {
		got, ok := s.Update(LabelILoveYou)
		if i < DefaultWindow && ok {
			t.Fatalf("frame %d: confirmed %q before the window filled", i, got)
		}
		if i == DefaultWindow && (!ok || got != LabelILoveYou) {
			t.Fatalf("frame %d: got (%q, %v), want (i_love_you, true)", i, got, ok)
		}
	}
}

func TestStabilizer_MixedWindowDoesNotConfirm(t *testing.T) {
	s := NewStabilizer(DefaultWindow)

	labels := append(repeat(LabelFist, 7), LabelPeace)
	if got, ok := feed(s, labels...); ok {
		t.Errorf("confirmed %q from a mixed window", got)
	}
}

func TestStabilizer_AlternatingNeverConfirms(t *testing.T) {
	s := NewStabilizer(DefaultWindow)

	labels := append(repeat(LabelPeace, 4), LabelILoveYou)
	labels = append(labels, repeat(LabelPeace, 3)...)
	for i, l := range labels {
		if got, ok := s.Update(l); ok {
			t.Fatalf("frame %d: confirmed %q", i, got)
		}
	}
}

func TestStabilizer_StickyThroughUnknown(t *testing.T) {
	s := NewStabilizer(DefaultWindow)
	feed(s, repeat(LabelPeace, DefaultWindow)...)

	for _, l := range []Label{LabelUnknown, LabelNone, LabelUnknown, LabelFist} {
		got, ok := s.Update(l)
		if !ok || got != LabelPeace {
			t.Fatalf("Update(%q) = (%q, %v), want peace to persist", l, got, ok)
		}
	}
}

func TestStabilizer_NewGestureReplaces(t *testing.T) {
	s := NewStabilizer(DefaultWindow)
	feed(s, repeat(LabelPeace, DefaultWindow)...)

	for i := 1; i < DefaultWindow; i++ {
		if got, _ := s.Update(LabelOpenHand); got != LabelPeace {
			t.Fatalf("frame %d: stable = %q before the window filled", i, got)
		}
	}
	if got, ok := s.Update(LabelOpenHand); !ok || got != LabelOpenHand {
		t.Errorf("got (%q, %v), want (open_hand, true)", got, ok)
	}
}

func TestStabilizer_UnknownNeverConfirms(t *testing.T) {
	s := NewStabilizer(4)
	if got, ok := feed(s, repeat(LabelUnknown, 10)...); ok {
		t.Errorf("unknown run confirmed %q", got)
	}
	if got, ok := feed(s, repeat(LabelNone, 10)...); ok {
		t.Errorf("none run confirmed %q", got)
	}
}

func TestStabilizer_HistoryBounded(t *testing.T) {
	s := NewStabilizer(5)
	for i := 0; i < 20; i++ {
		s.Update(Labels[i%len(Labels)])
		if n := len(s.History()); n > 5 {
			t.Fatalf("history length %d exceeds window", n)
		}
	}

	h := s.History()
	h[0] = "mutated"
	if s.History()[0] == "mutated" {
		t.Error("History() returned internal storage")
	}
}

func TestStabilizer_Defaults(t *testing.T) {
	if w := NewStabilizer(0).Window(); w != DefaultWindow {
		t.Errorf("Window() = %d, want %d", w, DefaultWindow)
	}
	if w := NewStabilizer(-3).Window(); w != DefaultWindow {
		t.Errorf("Window() = %d, want %d", w, DefaultWindow)
	}
}

func TestStabilizer_Reset(t *testing.T) {
	s := NewStabilizer(2)
	feed(s, LabelFist, LabelFist)
	if _, ok := s.Confirmed(); !ok {
		t.Fatal("expected fist to be confirmed")
	}

	s.Reset()
	if l, ok := s.Confirmed(); ok || l != "" {
		t.Errorf("Confirmed() after Reset = (%q, %v)", l, ok)
	}
	if len(s.History()) != 0 {
		t.Error("history not cleared")
	}
}
