package core

import "time"

// EffectKind enumerates the side effects a level update can request.
// Updates are pure; the platform performs the effects.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectRelocate // a target moved
	EffectAlert    // a soft failure the player should notice
	EffectComplete // the level has been cleared
	EffectRecycle  // a particle was moved back to the top
	EffectMarker   // a cosmetic marker should appear at At
)

// String returns a human-readable name for the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectNone:
		return "none"
	case EffectRelocate:
		return "relocate"
	case EffectAlert:
		return "alert"
	case EffectComplete:
		return "complete"
	case EffectRecycle:
		return "recycle"
	case EffectMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Alert describes the cosmetic response to a soft failure.
type Alert struct {
	// Vibrate is an on/off pattern for tactile feedback, starting with "on".
	Vibrate []time.Duration
	// Shake is how long the level view shakes. Zero means no shake.
	Shake time.Duration
	// Flash is how long the error indicator stays visible.
	Flash time.Duration
}

// Effect is a single requested side effect.
type Effect struct {
	Kind  EffectKind
	At    Point // relocate target / marker position / recycled particle
	Alert Alert
}

// Effects is the ordered list of effects produced by one update.
type Effects []Effect

// Has reports whether any effect of kind k is present.
func (fx Effects) Has(k EffectKind) bool {
	for _, e := range fx {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Count returns the number of effects of kind k.
func (fx Effects) Count(k EffectKind) int {
	n := 0
	for _, e := range fx {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// First returns the first effect of kind k.
func (fx Effects) First(k EffectKind) (Effect, bool) {
	for _, e := range fx {
		if e.Kind == k {
			return e, true
		}
	}
	return Effect{}, false
}
