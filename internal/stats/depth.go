package stats

import (
	"fmt"
	"strings"
)

// Depth is an effective-stack bucket.
type Depth int

const (
	// DepthAny matches every bucket in a Filter.
	DepthAny Depth = iota
	Shallow
	Mid
	Deep
)

func (d Depth) String() string {
	switch d {
	case Shallow:
		return "shallow"
	case Mid:
		return "mid"
	case Deep:
		return "deep"
	default:
		return "any"
	}
}

// Depths lists the concrete buckets.
func Depths() []Depth {
	return []Depth{Shallow, Mid, Deep}
}

// ParseDepth converts a bucket name to a Depth.
func ParseDepth(name string) (Depth, error) {
	for _, d := range append(Depths(), DepthAny) {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return DepthAny, fmt.Errorf("unknown stack depth %q", name)
}

// DepthBuckets are the effective-stack boundaries in big blinds:
// shallow < ShallowBelow <= mid <= DeepAbove < deep.
type DepthBuckets struct {
	ShallowBelow float64
	DeepAbove    float64
}

// DefaultDepthBuckets returns 40bb and 100bb boundaries.
func DefaultDepthBuckets() DepthBuckets {
	return DepthBuckets{ShallowBelow: 40, DeepAbove: 100}
}

// Classify buckets an effective stack.
func (b DepthBuckets) Classify(bb float64) Depth {
	switch {
	case bb < b.ShallowBelow:
		return Shallow
	case bb > b.DeepAbove:
		return Deep
	default:
		return Mid
	}
}
