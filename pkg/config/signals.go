package config

import "fmt"

// Linux realtime signal range as seen by the kernel.
const (
	sigRTMin = 34
	sigRTMax = 64
)

// SignalMap holds absolute signal numbers for each navigation command.
type SignalMap struct {
	Forward  int
	Backward int
	Last     int
}

// resolve turns base+offset pairs into absolute numbers and checks them.
func (s signalFile) resolve() (SignalMap, error) {
	m := SignalMap{
		Forward:  s.Base + s.Forward,
		Backward: s.Base + s.Backward,
		Last:     s.Base + s.Last,
	}

	named := []struct {
		name string
		num  int
	}{
		{"forward", m.Forward},
		{"backward", m.Backward},
		{"last", m.Last},
	}

	seen := make(map[int]string, len(named))
	for _, n := range named {
		if n.num < sigRTMin || n.num > sigRTMax {
			return SignalMap{}, fmt.Errorf("%w: signal for %q is %d, outside realtime range %d-%d",
				ErrInvalid, n.name, n.num, sigRTMin, sigRTMax)
		}
		if other, dup := seen[n.num]; dup {
			return SignalMap{}, fmt.Errorf("%w: %q and %q share signal %d", ErrInvalid, other, n.name, n.num)
		}
		seen[n.num] = n.name
	}
	return m, nil
}
