package gesture

import (
	"github.com/ayusman/handglow/internal/detector"
)

// Classification thresholds in normalized image units.
const (
	// ThumbMargin is how far the thumb tip must move past its base, along X,
	// to count as extended.
	ThumbMargin = 0.05
	// StrictEpsilon is the margin used by Fingers.
	StrictEpsilon = 0.01
	// ExtendedEpsilon is the margin used by the decision table.
	ExtendedEpsilon = 0.005
)

// FingerState records which fingers are extended.
type FingerState struct {
	Thumb  bool
	Index  bool
	Middle bool
	Ring   bool
	Pinky  bool
}

// fingerJoints holds tip, PIP and MCP indices for the four long fingers.
var fingerJoints = [4]struct{ tip, pip, mcp int }{
	{detector.IndexTip, detector.IndexPIP, detector.IndexMCP},
	{detector.MiddleTip, detector.MiddlePIP, detector.MiddleMCP},
	{detector.RingTip, detector.RingPIP, detector.RingMCP},
	{detector.PinkyTip, detector.PinkyPIP, detector.PinkyMCP},
}

// IsLeftHand infers handedness from the wrist position relative to the
// midpoint of the index and pinky knuckles. With a mirrored front camera a
// wrist left of that midpoint belongs to a left hand.
func IsLeftHand(points []detector.Point3D) bool {
	centerX := (points[detector.IndexMCP].X + points[detector.PinkyMCP].X) / 2
	return points[detector.Wrist].X < centerX
}

// thumbExtended compares the thumb tip with the thumb base (landmark 1).
func thumbExtended(points []detector.Point3D) bool {
	tip := points[detector.ThumbTip].X
	base := points[detector.ThumbCMC].X
	if IsLeftHand(points) {
		return tip > base+ThumbMargin
	}
	return tip < base-ThumbMargin
}

func fingerStates(points []detector.Point3D, eps float64) FingerState {
	var up [4]bool
	for i, j := range fingerJoints {
		up[i] = points[j.tip].Y < points[j.pip].Y-eps
	}
	return FingerState{
		Thumb:  thumbExtended(points),
		Index:  up[0],
		Middle: up[1],
		Ring:   up[2],
		Pinky:  up[3],
	}
}

// Fingers returns the extension state of each finger using the strict
// margin. It returns the zero FingerState for an incomplete hand.
func Fingers(points []detector.Point3D) FingerState {
	if detector.Validate(points) != nil {
		return FingerState{}
	}
	return fingerStates(points, StrictEpsilon)
}

// allCurled reports whether every long finger tip has dropped below its MCP.
func allCurled(points []detector.Point3D) bool {
	for _, j := range fingerJoints {
		if points[j.tip].Y <= points[j.mcp].Y {
			return false
		}
	}
	return true
}

type rule struct {
	label Label
	match func(f FingerState, curled bool) bool
}

// rules is evaluated in order; the first match wins.
//
// The "two" row has the same predicate as "i_love_you" and is therefore
// shadowed. It stays in the table so the ordering matches the documented
// gesture set.
var rules = []rule{
	{LabelILoveYou, func(f FingerState, _ bool) bool {
		return f.Index && f.Middle && !f.Ring && !f.Pinky && f.Thumb
	}},
	{LabelPeace, func(f FingerState, _ bool) bool {
		return f.Index && f.Middle && !f.Ring && !f.Pinky && !f.Thumb
	}},
	{LabelOpenHand, func(f FingerState, _ bool) bool {
		return f.Index && f.Middle && f.Ring && f.Pinky && f.Thumb
	}},
	{LabelFour, func(f FingerState, _ bool) bool {
		return f.Index && f.Middle && f.Ring && f.Pinky && !f.Thumb
	}},
	{LabelFist, func(f FingerState, curled bool) bool {
		return curled && !f.Thumb
	}},
	{LabelThumbsUp, func(f FingerState, curled bool) bool {
		return curled && f.Thumb
	}},
	{LabelOne, func(f FingerState, _ bool) bool {
		return f.Index && !f.Middle && !f.Ring && !f.Pinky && !f.Thumb
	}},
	{LabelTwo, func(f FingerState, _ bool) bool {
		return f.Index && f.Middle && !f.Ring && !f.Pinky && f.Thumb
	}},
}

// Classify maps 21 hand landmarks to a gesture label. It returns LabelNone
// when the hand is incomplete and LabelUnknown when no rule matches.
func Classify(points []detector.Point3D) Label {
	if detector.Validate(points) != nil {
		return LabelNone
	}

	return decide(fingerStates(points, ExtendedEpsilon), allCurled(points))
}

// decide runs the decision table.
func decide(f FingerState, curled bool) Label {
	for _, r := range rules {
		if r.match(f, curled) {
			return r.label
		}
	}
	return LabelUnknown
}

// ClassifyHand classifies a detected hand.
func ClassifyHand(h *detector.HandLandmarks) Label {
	if h == nil {
		return LabelNone
	}
	return Classify(h.Points[:])
}
