package document

import "testing"

func TestPropertiesLastWins(t *testing.T) {
	p := NewProperties()
	p.Set("a", NewInt(1))
	p.Set("b", NewInt(2))
	p.Set("a", NewInt(3))

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	keys := p.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b] (first-insertion order preserved)", keys)
	}

	v, ok := p.Get("a")
	if !ok {
		t.Fatal("Get(a) not found")
	}
	if v.Int.Int64() != 3 {
		t.Errorf("Get(a) = %v, want 3 (last value wins)", v.Int)
	}
}

func TestPropertiesEachOrder(t *testing.T) {
	p := NewProperties()
	p.Set("a", NewInt(1))
	p.Set("b", NewInt(2))
	p.Set("a", NewInt(3))

	var order []string
	p.Each(func(key string, v *Value) {
		order = append(order, key)
	})
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("Each order = %v, want [a b]", order)
	}
}

func TestPropertiesDelete(t *testing.T) {
	p := NewProperties()
	p.Set("a", NewInt(1))
	p.Set("b", NewInt(2))
	p.Delete("a")

	if p.Len() != 1 {
		t.Fatalf("Len() after delete = %d, want 1", p.Len())
	}
	if _, ok := p.Get("a"); ok {
		t.Error("Get(a) found after delete")
	}
	if keys := p.Keys(); len(keys) != 1 || keys[0] != "b" {
		t.Errorf("Keys() after delete = %v, want [b]", keys)
	}
}

func TestPropertiesNilReceiver(t *testing.T) {
	var p *Properties
	if p.Len() != 0 {
		t.Error("nil Properties.Len() should be 0")
	}
	if _, ok := p.Get("a"); ok {
		t.Error("nil Properties.Get should never find anything")
	}
	if p.Keys() != nil {
		t.Error("nil Properties.Keys() should be nil")
	}
	p.Each(func(string, *Value) { t.Error("nil Properties.Each should never call fn") })
}
