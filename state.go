package lurk

import (
	"fmt"
	"time"
)

// StateKind names the variant of a State.
type StateKind uint8

const (
	StateIdle StateKind = iota
	StateTalking
	StateHiding
	StateJumping
	StateShocked
)

var stateKindNames = [...]string{
	StateIdle:    "idle",
	StateTalking: "talking",
	StateHiding:  "hiding",
	StateJumping: "jumping",
	StateShocked: "shocked",
}

func (k StateKind) String() string {
	if int(k) < len(stateKindNames) {
		return stateKindNames[k]
	}
	return fmt.Sprintf("StateKind(%d)", k)
}

// ParseStateKind is the inverse of StateKind.String.
func ParseStateKind(s string) (StateKind, error) {
	for k, name := range stateKindNames {
		if name == s {
			return StateKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", s)
}

// State is one variant of the creature's behaviour. Exactly one is active at
// a time. Jumping and Shocked own the state that follows them, forming a
// short chain that ends in a passive state.
type State interface {
	Kind() StateKind
	isState()
}

// Idle rests in place and periodically starts talking.
type Idle struct {
	// Pos pins the creature; nil keeps it wherever it was last drawn.
	Pos        *Vec2I
	ArmsRaised bool
	NextTalkAt time.Time
}

// Talking delivers one speech line while the mouth flaps.
type Talking struct {
	Pos        Vec2I
	ArmsRaised bool
	Start      time.Time
	Duration   time.Duration
	Message    int
}

// Hiding conceals the creature inside a window, toggling between peeking
// and fully hidden.
type Hiding struct {
	Window       WindowCandidate
	Local        Vec2I
	Facing       Facing
	Peek         bool
	PeekToggleAt time.Time
}

// Jumping moves along an arc from From to To, then becomes Next.
type Jumping struct {
	// From is the arc start; nil means the position recorded when the
	// previous state completed.
	From     *Vec2I
	To       Vec2I
	Start    time.Time
	Duration time.Duration
	Next     State
}

// Shocked plays the caught recoil away from From, then becomes Next.
type Shocked struct {
	From   Vec2I
	Recoil Facing
	Start  time.Time
	Next   State
}

func (*Idle) Kind() StateKind    { return StateIdle }
func (*Talking) Kind() StateKind { return StateTalking }
func (*Hiding) Kind() StateKind  { return StateHiding }
func (*Jumping) Kind() StateKind { return StateJumping }
func (*Shocked) Kind() StateKind { return StateShocked }

func (*Idle) isState()    {}
func (*Talking) isState() {}
func (*Hiding) isState()  {}
func (*Jumping) isState() {}
func (*Shocked) isState() {}

// chainEnd returns the time at which s and every timed state chained after
// it will have completed. Passive states end immediately.
func chainEnd(s State) time.Time {
	var end time.Time
	for s != nil {
		switch v := s.(type) {
		case *Jumping:
			end = laterOf(end, v.Start.Add(v.Duration))
			s = v.Next
		case *Shocked:
			end = laterOf(end, v.Start.Add(shockDuration))
			s = v.Next
		default:
			return end
		}
	}
	return end
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
