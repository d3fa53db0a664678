package dom

import "testing"

func TestRegistryOffByNamespace(t *testing.T) {
	r := NewRegistry(nil)
	noop := func(*Event) {}

	r.On("resize", "a", "", noop)
	r.On("click", "a", ".x", noop)
	r.On("click", "b", "", noop)

	if got := r.Count("a"); got != 2 {
		t.Fatalf("Count(a) = %d, want 2", got)
	}

	r.Off("", "a", "")
	if got := r.Count("a"); got != 0 {
		t.Errorf("Count(a) after Off = %d, want 0", got)
	}
	if got := r.Count("b"); got != 1 {
		t.Errorf("Count(b) = %d, want 1", got)
	}
}

func TestRegistryOffSpecific(t *testing.T) {
	r := NewRegistry(nil)
	noop := func(*Event) {}

	r.On("click", "a", ".x", noop)
	r.On("click", "a", ".y", noop)
	r.On("keyup", "a", ".x", noop)

	r.Off("click", "a", ".x")
	if got := r.Count("a"); got != 2 {
		t.Errorf("Count(a) = %d, want 2", got)
	}
}

func TestRegistryIgnoresInvalidOn(t *testing.T) {
	r := NewRegistry(nil)
	r.On("", "a", "", func(*Event) {})
	r.On("click", "a", "", nil)
	if got := r.Count(""); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
}

func TestRegistryTriggerOrderAndFilter(t *testing.T) {
	r := NewRegistry(nil)
	var got []string
	r.On("click", "a", "", func(*Event) { got = append(got, "first") })
	r.On("keyup", "a", "", func(*Event) { got = append(got, "other") })
	r.On("click", "b", "", func(*Event) { got = append(got, "second") })

	r.Trigger(&Event{Type: "click"})
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("got %v, want [first second]", got)
	}
}

func TestRegistryTriggerAllowsOffDuringDispatch(t *testing.T) {
	r := NewRegistry(nil)
	calls := 0
	r.On("click", "a", "", func(*Event) {
		calls++
		r.Off("", "a", "")
	})
	r.On("click", "a", "", func(*Event) { calls++ })

	r.Trigger(&Event{Type: "click"})
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (snapshot taken before dispatch)", calls)
	}
	r.Trigger(&Event{Type: "click"})
	if calls != 2 {
		t.Errorf("calls = %d after Off, want 2", calls)
	}
}

func TestSelectionHelpers(t *testing.T) {
	var empty Selection
	if !empty.IsEmpty() || empty.First() != nil || empty.Get(0) != nil {
		t.Error("empty selection helpers should be no-ops")
	}
	empty.Empty()
	empty.Append()
	empty.AddClass("x")

	if Select(nil) != nil {
		t.Error("Select(nil) should be empty")
	}
}
