package animation

// MixBlend controls how a timeline value is combined with the current pose.
type MixBlend int

const (
	// MixBlendSetup transitions from the setup value to the timeline value.
	// Before the first key the setup value is set.
	MixBlendSetup MixBlend = iota
	// MixBlendFirst transitions from the current value to the timeline value.
	// Before the first key it transitions toward the setup value. Used for
	// the first track when there may be a pose left from a previous frame.
	MixBlendFirst
	// MixBlendReplace transitions from the current value to the timeline value.
	// Before the first key nothing changes.
	MixBlendReplace
	// MixBlendAdd adds the timeline value to the current value.
	MixBlendAdd
)

func (b MixBlend) String() string {
	switch b {
	case MixBlendSetup:
		return "setup"
	case MixBlendFirst:
		return "first"
	case MixBlendReplace:
		return "replace"
	case MixBlendAdd:
		return "add"
	}
	return "unknown"
}

// MixDirection tells a timeline whether its contribution is being mixed in or out.
// Discrete timelines use it to restore setup values while mixing out.
type MixDirection int

const (
	MixIn MixDirection = iota
	MixOut
)
