package implicits

import "fmt"

// EvidenceKind tags the strongest dependency evidence seen so far for one
// binder slot.
type EvidenceKind int

const (
	// KindUnseen means the binder has not been seen to occur anywhere.
	KindUnseen EvidenceKind = iota
	// KindRigid means the binder occurs in a position that cannot
	// disappear under reduction.
	KindRigid
	// KindFlexible means the binder occurs only in positions that may
	// vanish once another argument is substituted.
	KindFlexible
	// KindBoth records the earliest flexible and the earliest rigid
	// occurrence separately.
	KindBoth
	// KindManual marks a user-declared implicit with no computed
	// occurrence evidence.
	KindManual
)

// Evidence is the per-binder occurrence record. The zero value is Unseen.
// It is created fresh per binder per inference call, mutated only through
// Merge during the single classification pass, and then frozen into the
// installed status.
type Evidence struct {
	Kind     EvidenceKind `yaml:"kind"`
	FlexPos  Position     `yaml:"-"`
	RigidPos Position     `yaml:"-"`
}

// ManualEvidence is the evidence attached to user-declared implicits.
func ManualEvidence() Evidence { return Evidence{Kind: KindManual} }

// Seen reports whether any occurrence has been recorded.
func (e Evidence) Seen() bool { return e.Kind != KindUnseen }

// Merge upgrades the evidence with one occurrence at pos. The merge is
// monotone: a rigid occurrence at an earlier position always wins, and a
// flexible occurrence never downgrades existing rigid evidence — at best
// it is recorded alongside it when strictly earlier.
func (e Evidence) Merge(pos Position, rigid bool) Evidence {
	if rigid {
		switch e.Kind {
		case KindUnseen:
			return Evidence{Kind: KindRigid, RigidPos: pos}
		case KindRigid:
			if pos.Less(e.RigidPos) {
				return Evidence{Kind: KindRigid, RigidPos: pos}
			}
			return e
		case KindFlexible:
			if pos.Less(e.FlexPos) || pos == e.FlexPos {
				return Evidence{Kind: KindRigid, RigidPos: pos}
			}
			return Evidence{Kind: KindBoth, FlexPos: e.FlexPos, RigidPos: pos}
		case KindBoth:
			if pos.Less(e.FlexPos) || pos == e.FlexPos {
				return Evidence{Kind: KindRigid, RigidPos: pos}
			}
			if pos.Less(e.RigidPos) {
				return Evidence{Kind: KindBoth, FlexPos: e.FlexPos, RigidPos: pos}
			}
			return e
		default:
			return e
		}
	}
	switch e.Kind {
	case KindUnseen:
		return Evidence{Kind: KindFlexible, FlexPos: pos}
	case KindRigid:
		if pos.Less(e.RigidPos) {
			return Evidence{Kind: KindBoth, FlexPos: pos, RigidPos: e.RigidPos}
		}
		return e
	case KindFlexible:
		if pos.Less(e.FlexPos) {
			return Evidence{Kind: KindFlexible, FlexPos: pos}
		}
		return e
	case KindBoth:
		if pos.Less(e.FlexPos) {
			return Evidence{Kind: KindBoth, FlexPos: pos, RigidPos: e.RigidPos}
		}
		return e
	default:
		return e
	}
}

// String renders the evidence for diagnostics.
func (e Evidence) String() string {
	switch e.Kind {
	case KindUnseen:
		return "unseen"
	case KindRigid:
		return fmt.Sprintf("rigid at %s", e.RigidPos)
	case KindFlexible:
		return fmt.Sprintf("flexible at %s", e.FlexPos)
	case KindBoth:
		return fmt.Sprintf("flexible at %s, rigid at %s", e.FlexPos, e.RigidPos)
	case KindManual:
		return "manual"
	default:
		return "invalid"
	}
}
