package avd

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// SegmentKind identifies one of the mission segment types.
type SegmentKind uint8

const (
	// KindTakeoff is the takeoff segment.
	KindTakeoff SegmentKind = iota + 1
	// KindClimb is a climb segment.
	KindClimb
	// KindCruise is a cruise segment (Breguet range).
	KindCruise
	// KindDescent is a descent segment.
	KindDescent
	// KindLoiter is a loiter segment (Breguet endurance).
	KindLoiter
	// KindLanding is the landing segment.
	KindLanding
)

func (k SegmentKind) String() string {
	switch k {
	case KindTakeoff:
		return "takeoff"
	case KindClimb:
		return "climb"
	case KindCruise:
		return "cruise"
	case KindDescent:
		return "descent"
	case KindLoiter:
		return "loiter"
	case KindLanding:
		return "landing"
	default:
		panic("unknown segment kind")
	}
}

// SegmentKindFromString returns the segment kind from its name (case insensitive).
func SegmentKindFromString(name string) (SegmentKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "takeoff":
		return KindTakeoff, nil
	case "climb":
		return KindClimb, nil
	case "cruise":
		return KindCruise, nil
	case "descent":
		return KindDescent, nil
	case "loiter":
		return KindLoiter, nil
	case "landing":
		return KindLanding, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSegmentType, name)
	}
}

// Segment is one leg of a mission profile. The set of implementations is closed.
type Segment interface {
	Kind() SegmentKind
	segment()
}

// Takeoff is the takeoff segment.
type Takeoff struct{}

// Climb is a climb segment.
type Climb struct{}

// Descent is a descent segment.
type Descent struct{}

// Landing is the landing segment.
type Landing struct{}

// Cruise is a cruise segment flown at constant speed.
type Cruise struct {
	Speed    float64 `yaml:"speed"`    // m/s
	Range    float64 `yaml:"range"`    // m
	Altitude float64 `yaml:"altitude"` // m
}

// Loiter is a loiter segment.
type Loiter struct {
	Endurance float64 `yaml:"endurance"` // s
	Altitude  float64 `yaml:"altitude"`  // m
	Speed     float64 `yaml:"speed"`     // m/s
}

// Kind implements the Segment interface.
func (Takeoff) Kind() SegmentKind { return KindTakeoff }

// Kind implements the Segment interface.
func (Climb) Kind() SegmentKind { return KindClimb }

// Kind implements the Segment interface.
func (Descent) Kind() SegmentKind { return KindDescent }

// Kind implements the Segment interface.
func (Landing) Kind() SegmentKind { return KindLanding }

// Kind implements the Segment interface.
func (Cruise) Kind() SegmentKind { return KindCruise }

// Kind implements the Segment interface.
func (Loiter) Kind() SegmentKind { return KindLoiter }

func (Takeoff) segment() {}
func (Climb) segment()   {}
func (Descent) segment() {}
func (Landing) segment() {}
func (Cruise) segment()  {}
func (Loiter) segment()  {}

// Validate checks that the cruise is flown at a positive speed over a non negative range and altitude.
func (c Cruise) Validate() error {
	if !(c.Speed > 0) || !finite(c.Speed) {
		return fmt.Errorf("%w: cruise speed must be positive, got %f", ErrInvalidInputs, c.Speed)
	}
	if !(c.Range >= 0) || !finite(c.Range) || !(c.Altitude >= 0) || !finite(c.Altitude) {
		return fmt.Errorf("%w: cruise range and altitude must be non negative, got %s", ErrInvalidInputs, c)
	}
	return nil
}

// Validate checks that the loiter endurance, speed and altitude are non negative.
func (l Loiter) Validate() error {
	for _, v := range []float64{l.Endurance, l.Speed, l.Altitude} {
		if !(v >= 0) || !finite(v) {
			return fmt.Errorf("%w: loiter endurance, speed and altitude must be non negative, got %s", ErrInvalidInputs, l)
		}
	}
	return nil
}

func (c Cruise) String() string {
	return fmt.Sprintf("cruise(V=%.1fm/s, R=%.0fkm, h=%.0fm)", c.Speed, c.Range/1e3, c.Altitude)
}

func (l Loiter) String() string {
	return fmt.Sprintf("loiter(E=%.0fmin, h=%.0fm, V=%.1fm/s)", l.Endurance/60, l.Altitude, l.Speed)
}

// Profile is an ordered mission profile.
type Profile []Segment

func (p Profile) String() string {
	names := make([]string, len(p))
	for i, s := range p {
		if s == nil {
			names[i] = "<nil>"
		} else if str, ok := s.(fmt.Stringer); ok {
			names[i] = str.String()
		} else {
			names[i] = s.Kind().String()
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// UnmarshalYAML decodes a profile where each entry is either the bare name of a fixed-fraction
// segment (`- takeoff`) or a single-key mapping holding the segment parameters
// (`- cruise: {speed: 220, range: 2.5e6, altitude: 12192}`).
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: mission profile must be a sequence", value.Line)
	}
	profile := make(Profile, 0, len(value.Content))
	for _, node := range value.Content {
		seg, err := decodeSegment(node)
		if err != nil {
			return err
		}
		profile = append(profile, seg)
	}
	*p = profile
	return nil
}

func decodeSegment(node *yaml.Node) (Segment, error) {
	var name string
	var params *yaml.Node
	switch node.Kind {
	case yaml.ScalarNode:
		name = node.Value
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, fmt.Errorf("line %d: %w: segment mapping must have exactly one key", node.Line, ErrUnknownSegmentType)
		}
		name = node.Content[0].Value
		params = node.Content[1]
	default:
		return nil, fmt.Errorf("line %d: %w", node.Line, ErrUnknownSegmentType)
	}
	kind, err := SegmentKindFromString(name)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	switch kind {
	case KindTakeoff:
		return Takeoff{}, nil
	case KindClimb:
		return Climb{}, nil
	case KindDescent:
		return Descent{}, nil
	case KindLanding:
		return Landing{}, nil
	case KindCruise:
		v, err := decodeParams(node.Line, name, params, "speed", "range", "altitude")
		if err != nil {
			return nil, err
		}
		c := Cruise{Speed: v["speed"], Range: v["range"], Altitude: v["altitude"]}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return c, nil
	default: // KindLoiter
		v, err := decodeParams(node.Line, name, params, "endurance", "altitude", "speed")
		if err != nil {
			return nil, err
		}
		l := Loiter{Endurance: v["endurance"], Altitude: v["altitude"], Speed: v["speed"]}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return l, nil
	}
}

// decodeParams decodes the segment parameters, which must hold exactly the provided keys.
func decodeParams(line int, name string, params *yaml.Node, keys ...string) (map[string]float64, error) {
	if params == nil {
		return nil, fmt.Errorf("line %d: %w: %s requires %s", line, ErrInvalidInputs, name, strings.Join(keys, ", "))
	}
	var raw map[string]*float64
	if err := params.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: %w: %s: %s", line, ErrInvalidInputs, name, err)
	}
	for key := range raw {
		found := false
		for _, k := range keys {
			found = found || k == key
		}
		if !found {
			return nil, fmt.Errorf("line %d: %w: unknown %s parameter %q", line, ErrInvalidInputs, name, key)
		}
	}
	values := make(map[string]float64, len(keys))
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			return nil, fmt.Errorf("line %d: %w: %s requires %s", line, ErrInvalidInputs, name, k)
		}
		values[k] = *v
	}
	return values, nil
}

// MarshalYAML encodes the profile in the form read by UnmarshalYAML.
func (p Profile) MarshalYAML() (interface{}, error) {
	out := make([]interface{}, len(p))
	for i, s := range p {
		switch seg := s.(type) {
		case Cruise:
			out[i] = map[string]Cruise{KindCruise.String(): seg}
		case Loiter:
			out[i] = map[string]Loiter{KindLoiter.String(): seg}
		case Takeoff, Climb, Descent, Landing:
			out[i] = seg.Kind().String()
		default:
			return nil, fmt.Errorf("entry %d: %w", i, ErrUnknownSegmentType)
		}
	}
	return out, nil
}

// ParseProfile reads a YAML mission profile.
func ParseProfile(r io.Reader) (Profile, error) {
	var p Profile
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		if err == io.EOF {
			return Profile{}, nil
		}
		return nil, err
	}
	return p, nil
}
