package hud

import (
	"sort"
	"strings"
)

// Element is one item the HUD can display.
type Element int

const (
	DeviceInfo Element = iota
	Framerate
	Frametimes
	StatSubmissions
	StatDrawCalls
	StatPipelines
	StatMemory
	StatGpuLoad
	Version
	APIVersion
	CompilerActivity
	numElements
)

var elementStrings = [numElements]string{
	DeviceInfo:       "devinfo",
	Framerate:        "fps",
	Frametimes:       "frametimes",
	StatSubmissions:  "submissions",
	StatDrawCalls:    "drawcalls",
	StatPipelines:    "pipelines",
	StatMemory:       "memory",
	StatGpuLoad:      "gpuload",
	Version:          "version",
	APIVersion:       "api",
	CompilerActivity: "compiler",
}

var elementNames = func() map[string]Element {
	m := make(map[string]Element, numElements)
	for e, name := range elementStrings {
		m[name] = Element(e)
	}
	return m
}()

func (e Element) String() string {
	if e < 0 || e >= numElements {
		return "unknown"
	}
	return elementStrings[e]
}

// Elements is a set of HUD elements. A nil set is empty.
type Elements map[Element]struct{}

func NewElements(els ...Element) Elements {
	s := make(Elements, len(els))
	for _, e := range els {
		s[e] = struct{}{}
	}
	return s
}

func (s Elements) Has(e Element) bool {
	_, ok := s[e]
	return ok
}

func (s Elements) Empty() bool { return len(s) == 0 }

// Intersect returns the elements present in both sets.
func (s Elements) Intersect(other Elements) Elements {
	out := make(Elements)
	for e := range s {
		if other.Has(e) {
			out[e] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in declaration order.
func (s Elements) Sorted() []Element {
	out := make([]Element, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Elements) String() string {
	names := make([]string, 0, len(s))
	for _, e := range s.Sorted() {
		names = append(names, e.String())
	}
	return strings.Join(names, ",")
}

// ParseElements reads a comma separated element list such as
// "submissions,drawcalls,gpuload". "full" enables everything and "1" is
// shorthand for devinfo and fps. Names that are not recognized are returned
// separately so the caller can report them.
func ParseElements(list string) (Elements, []string) {
	set := make(Elements)
	var unknown []string
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		switch name {
		case "":
			continue
		case "1":
			set[DeviceInfo] = struct{}{}
			set[Framerate] = struct{}{}
		case "full":
			for _, e := range elementNames {
				set[e] = struct{}{}
			}
		default:
			e, ok := elementNames[name]
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			set[e] = struct{}{}
		}
	}
	return set, unknown
}
