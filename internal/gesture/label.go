// Package gesture classifies hand poses from landmarks and debounces the
// per-frame labels into stable gestures.
package gesture

// Label identifies a recognized hand pose.
type Label string

const (
	LabelILoveYou Label = "i_love_you"
	LabelPeace    Label = "peace"
	LabelOpenHand Label = "open_hand"
	LabelFour     Label = "four"
	LabelFist     Label = "fist"
	LabelThumbsUp Label = "thumbs_up"
	LabelOne      Label = "one"
	LabelTwo      Label = "two"
	// LabelUnknown means a hand was found but matched no rule.
	LabelUnknown Label = "unknown"
	// LabelNone means no usable hand was found.
	LabelNone Label = "none"
)

// Labels lists every label in decision-table order followed by the two
// non-gesture labels.
var Labels = []Label{
	LabelILoveYou,
	LabelPeace,
	LabelOpenHand,
	LabelFour,
	LabelFist,
	LabelThumbsUp,
	LabelOne,
	LabelTwo,
	LabelUnknown,
	LabelNone,
}

// IsGesture reports whether l names an actual pose rather than unknown/none.
func (l Label) IsGesture() bool {
	return l != LabelUnknown && l != LabelNone && l != ""
}

// ParseLabel returns the Label named s, or LabelUnknown and false.
func ParseLabel(s string) (Label, bool) {
	for _, l := range Labels {
		if string(l) == s {
			return l, true
		}
	}
	return LabelUnknown, false
}

func (l Label) String() string {
	return string(l)
}
