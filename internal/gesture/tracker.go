package gesture

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ayusman/handglow/internal/detector"
)

// DefaultTrackTTL is how many frames a hand may go unseen before its
// history is dropped.
const DefaultTrackTTL = 30

// Observation is the result of classifying and stabilizing one hand.
// Changed is set only on the frame a new stable label was confirmed.
type Observation struct {
	TrackID   string  `json:"track_id"`
	Key       string  `json:"key"`
	Raw       Label   `json:"raw"`
	Stable    Label   `json:"stable,omitempty"`
	Confirmed bool    `json:"confirmed"`
	Changed   bool    `json:"changed,omitempty"`
	AnchorX   float64 `json:"anchor_x"`
	AnchorY   float64 `json:"anchor_y"`
}

type track struct {
	id       string
	stab     *Stabilizer
	lastSeen uint64
}

// Tracker keeps one Stabilizer per tracked hand. Hands are matched across
// frames by the handedness reported by the landmark source.
type Tracker struct {
	window int
	ttl    uint64
	frame  uint64
	tracks map[string]*track
}

// NewTracker creates a Tracker. Non-positive arguments select the defaults.
func NewTracker(window, ttl int) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	if ttl <= 0 {
		ttl = DefaultTrackTTL
	}
	return &Tracker{
		window: window,
		ttl:    uint64(ttl),
		tracks: make(map[string]*track),
	}
}

// Observe classifies each hand, feeds its stabilizer and returns one
// Observation per hand in input order. Tracks not seen for the TTL are
// dropped.
func (t *Tracker) Observe(hands []detector.HandLandmarks) []Observation {
	t.frame++

	out := make([]Observation, 0, len(hands))
	seen := make(map[string]int, len(hands))

	for i := range hands {
		hand := &hands[i]
		key := trackKey(hand.Handedness, i, seen)

		tr, ok := t.tracks[key]
		if !ok {
			tr = &track{
				id:   uuid.New().String(),
				stab: NewStabilizer(t.window),
			}
			t.tracks[key] = tr
		}
		tr.lastSeen = t.frame

		raw := ClassifyHand(hand)
		prev, hadPrev := tr.stab.Confirmed()
		stable, confirmed := tr.stab.Update(raw)

		obs := Observation{
			TrackID:   tr.id,
			Key:       key,
			Raw:       raw,
			Stable:    stable,
			Confirmed: confirmed,
			Changed:   confirmed && (!hadPrev || prev != stable),
		}
		if raw != LabelNone {
			obs.AnchorX, obs.AnchorY = hand.PalmCenter()
		}
		out = append(out, obs)
	}

	for key, tr := range t.tracks {
		if t.frame-tr.lastSeen > t.ttl {
			delete(t.tracks, key)
		}
	}

	return out
}

// trackKey picks a stable key for a hand: its handedness, disambiguated
// when two hands in one frame report the same side.
func trackKey(handedness string, index int, seen map[string]int) string {
	if handedness == "" {
		return fmt.Sprintf("hand-%d", index)
	}
	n := seen[handedness]
	seen[handedness] = n + 1
	if n == 0 {
		return handedness
	}
	return fmt.Sprintf("%s-%d", handedness, n)
}

// Len returns the number of live tracks.
func (t *Tracker) Len() int {
	return len(t.tracks)
}

// Reset drops every track.
func (t *Tracker) Reset() {
	t.tracks = make(map[string]*track)
}
