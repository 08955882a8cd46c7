package service

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := newOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 4) // update keeps position
	m.Delete("a")
	m.Delete("missing")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"b":4,"c":3}` {
		t.Errorf("Marshal = %s", data)
	}

	back := newOrderedMap[int]()
	if err := json.Unmarshal([]byte(`{"z":1,"y":2,"x":3}`), back); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(back.Keys(), ","); got != "z,y,x" {
		t.Errorf("Keys = %s", got)
	}
	if v, ok := back.Get("y"); !ok || v != 2 {
		t.Errorf("Get(y) = %d, %v", v, ok)
	}
	if vals := back.Values(); len(vals) != 3 || vals[0] != 1 || vals[2] != 3 {
		t.Errorf("Values = %v", vals)
	}
}

func TestOrderedMapRejectsNonObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"x"`, `{"a": "not an int"}`} {
		m := newOrderedMap[int]()
		if err := json.Unmarshal([]byte(raw), m); err == nil {
			t.Errorf("Unmarshal(%s) succeeded", raw)
		}
	}
}
