package reactive

import (
	"errors"
	"reflect"
	"testing"

	rterrors "github.com/vango-dev/reactree/internal/errors"
)

func TestObserveNested(t *testing.T) {
	tr := NewTracker()
	state := Observe(tr, map[string]any{
		"user": map[string]any{
			"name": "ada",
			"address": map[string]any{
				"city": "london",
			},
		},
		"tags": []any{"a", "b"},
	})

	user, ok := state.Peek("user").(*State)
	if !ok {
		t.Fatalf("user = %T, want *State", state.Peek("user"))
	}
	if user.Peek("name") != "ada" {
		t.Errorf("user.name = %v", user.Peek("name"))
	}

	if _, ok := state.Peek("tags").([]any); !ok {
		t.Errorf("tags = %T, want []any left as-is", state.Peek("tags"))
	}

	city, err := state.Lookup("user.address.city")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if city != "london" {
		t.Errorf("city = %v, want london", city)
	}
}

func TestObserveSortedKeyOrder(t *testing.T) {
	state := Observe(NewTracker(), map[string]any{"c": 1, "a": 2, "b": 3})

	if got := state.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", got)
	}

	var prev uint64
	for _, key := range state.Keys() {
		cell, _ := state.Cell(key)
		if cell.Dep().ID() <= prev {
			t.Errorf("dep ids not ascending by key order at %s", key)
		}
		prev = cell.Dep().ID()
	}
}

func TestObserveCycle(t *testing.T) {
	a := map[string]any{"name": "a"}
	b := map[string]any{"name": "b", "peer": a}
	a["peer"] = b

	state := Observe(NewTracker(), map[string]any{"root": a})

	root := state.Peek("root").(*State)
	peer := root.Peek("peer").(*State)
	back := peer.Peek("peer").(*State)

	if back != root {
		t.Error("cyclic map should resolve to the same *State")
	}

	snap := state.Snapshot()
	rootSnap := snap["root"].(map[string]any)
	peerSnap := rootSnap["peer"].(map[string]any)
	if reflect.ValueOf(peerSnap["peer"]).Pointer() != reflect.ValueOf(rootSnap).Pointer() {
		t.Error("snapshot should preserve the cycle")
	}
}

func TestNestedWriteNotifiesReaders(t *testing.T) {
	tr := NewTracker()
	state := Observe(tr, map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	var last any
	NewWatcher(tr, nil, func() any {
		v, _ := state.Lookup("user.name")
		return v
	}, func(newVal, _ any) error {
		last = newVal
		return nil
	})

	if err := state.Assign("user.name", "grace"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if last != "grace" {
		t.Errorf("last = %v, want grace", last)
	}
}

func TestLookupErrors(t *testing.T) {
	state := Observe(NewTracker(), map[string]any{"n": 1})

	tests := []string{"missing", "n.deeper", ""}
	for _, path := range tests {
		if _, err := state.Lookup(path); !errors.Is(err, rterrors.New("R002")) {
			t.Errorf("Lookup(%q) err = %v, want R002", path, err)
		}
	}

	if err := state.Assign("n.deeper", 2); !errors.Is(err, rterrors.New("R002")) {
		t.Errorf("Assign err = %v, want R002", err)
	}
}

func TestSetMapIsNotObserved(t *testing.T) {
	state := Observe(NewTracker(), map[string]any{"cfg": nil})

	if err := state.Set("cfg", map[string]any{"x": 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := state.Peek("cfg").(map[string]any); !ok {
		t.Errorf("cfg = %T, want plain map", state.Peek("cfg"))
	}
}

func TestLookupThroughReplacedRecord(t *testing.T) {
	tr := NewTracker()
	state := Observe(tr, map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	runs := 0
	w := NewWatcher(tr, nil, func() any {
		v, err := state.Lookup("user.name")
		if err != nil {
			t.Fatalf("Lookup in getter: %v", err)
		}
		return v
	}, func(_, _ any) error {
		runs++
		return nil
	})

	if err := state.Set("user", map[string]any{"name": "bob", "address": map[string]any{"city": "paris"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if w.Value() != "bob" {
		t.Errorf("watcher value = %v, want bob", w.Value())
	}
	if runs != 1 {
		t.Errorf("onChange runs = %d, want 1", runs)
	}

	v, err := state.Lookup("user.address.city")
	if err != nil || v != "paris" {
		t.Errorf("Lookup(user.address.city) = %v, %v; want paris", v, err)
	}

	// The user cell stays tracked; fields inside the plain map do not.
	userCell, _ := state.Cell("user")
	if ids := w.DepIDs(); len(ids) != 2 || !containsID(ids, userCell.Dep().ID()) {
		t.Errorf("deps = %v, want the user cell among 2", ids)
	}

	if _, err := state.Lookup("user.missing"); rterrors.CodeOf(err) != "R002" {
		t.Errorf("Lookup(user.missing) code = %q, want R002", rterrors.CodeOf(err))
	}
	if _, err := state.Lookup("user.name.first"); rterrors.CodeOf(err) != "R002" {
		t.Errorf("Lookup(user.name.first) code = %q, want R002", rterrors.CodeOf(err))
	}
	if err := state.Assign("user.name", "eve"); rterrors.CodeOf(err) != "R002" {
		t.Errorf("Assign into plain map code = %q, want R002", rterrors.CodeOf(err))
	}
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestMakeReactive(t *testing.T) {
	tr := NewTracker()
	state := Observe(tr, nil)

	cell := MakeReactive(tr, state, "late", map[string]any{"x": 1})
	if !state.Has("late") {
		t.Fatal("MakeReactive did not install the key")
	}
	if _, ok := cell.Peek().(*State); !ok {
		t.Errorf("nested value = %T, want *State", cell.Peek())
	}
	if cell.Key() != "late" {
		t.Errorf("Key() = %q", cell.Key())
	}
}

func TestDecode(t *testing.T) {
	state := Observe(NewTracker(), map[string]any{
		"count": 3.0,
		"user":  map[string]any{"name": "ada"},
	})

	var out struct {
		Count int `json:"count"`
		User  struct {
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := state.Decode(&out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Count != 3 || out.User.Name != "ada" {
		t.Errorf("decoded %+v", out)
	}
}

func TestSnapshotDoesNotTrack(t *testing.T) {
	tr := NewTracker()
	state := Observe(tr, map[string]any{"x": 1})

	w := NewWatcher(tr, nil, func() any {
		return len(state.Snapshot())
	}, nil)

	if len(w.DepIDs()) != 0 {
		t.Errorf("Snapshot tracked deps %v", w.DepIDs())
	}
}
