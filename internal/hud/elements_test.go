package hud

import (
	"reflect"
	"testing"
)

func TestParseElements(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        []Element
		wantUnknown []string
	}{
		{
			name:  "stat list",
			input: "submissions, DrawCalls,gpuload",
			want:  []Element{StatSubmissions, StatDrawCalls, StatGpuLoad},
		},
		{
			name:        "unknown names are reported",
			input:       "memory,bogus,,fps,scale=2",
			want:        []Element{Framerate, StatMemory},
			wantUnknown: []string{"bogus", "scale=2"},
		},
		{
			name:  "shorthand",
			input: "1",
			want:  []Element{DeviceInfo, Framerate},
		},
		{
			name:  "empty",
			input: "",
			want:  []Element{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unknown := ParseElements(tt.input)
			if !reflect.DeepEqual(got.Sorted(), tt.want) {
				t.Errorf("elements: got %v, want %v", got.Sorted(), tt.want)
			}
			if !reflect.DeepEqual(unknown, tt.wantUnknown) {
				t.Errorf("unknown: got %v, want %v", unknown, tt.wantUnknown)
			}
		})
	}
}

func TestParseElementsFull(t *testing.T) {
	got, unknown := ParseElements("full")
	if len(unknown) != 0 {
		t.Fatalf("unexpected unknown names %v", unknown)
	}
	if len(got) != len(elementNames) {
		t.Fatalf("full should enable %d elements, got %d", len(elementNames), len(got))
	}
	if filtered := got.Intersect(statElements); len(filtered) != 6 {
		t.Fatalf("full should contain all 6 stat elements, got %s", filtered)
	}
}

func TestElementsIntersect(t *testing.T) {
	a := NewElements(StatMemory, Framerate, StatGpuLoad)
	b := NewElements(StatGpuLoad, StatMemory, CompilerActivity)

	got := a.Intersect(b)
	if got.String() != "memory,gpuload" {
		t.Fatalf("unexpected intersection %q", got.String())
	}

	var empty Elements
	if !empty.Intersect(a).Empty() || !a.Intersect(empty).Empty() {
		t.Fatal("intersection with an empty set must be empty")
	}
}

func TestElementString(t *testing.T) {
	for e := Element(0); e < numElements; e++ {
		name := e.String()
		if back, ok := elementNames[name]; !ok || back != e {
			t.Errorf("element %d: name %q does not map back", e, name)
		}
	}
	if got := CompilerActivity.String(); got != "compiler" {
		t.Errorf("CompilerActivity = %q", got)
	}
	for _, e := range []Element{-1, numElements} {
		if got := e.String(); got != "unknown" {
			t.Errorf("Element(%d) = %q, want unknown", e, got)
		}
	}
}
