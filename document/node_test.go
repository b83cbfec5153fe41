package document

import "testing"

func TestNodeAddArgSetPropAddChild(t *testing.T) {
	n := NewNode("foo")
	n.AddArg(NewInt(1))
	n.SetProp("bar", NewBool(true))
	child := NewNode("child")
	n.AddChild(child)

	if len(n.Args) != 1 || n.Args[0].Int.Int64() != 1 {
		t.Fatalf("Args = %v, want [1]", n.Args)
	}
	v, ok := n.Props.Get("bar")
	if !ok || !v.Bool {
		t.Fatalf("Props[bar] = %v, ok=%v, want true", v, ok)
	}
	if len(n.Children) != 1 || n.Children[0] != child {
		t.Fatalf("Children = %v, want [child]", n.Children)
	}
}

func TestNodeSetPropOnNilProps(t *testing.T) {
	n := &Node{Name: "foo"}
	n.SetProp("a", NewInt(1))
	if n.Props == nil {
		t.Fatal("SetProp should lazily allocate Props")
	}
	v, ok := n.Props.Get("a")
	if !ok || v.Int.Int64() != 1 {
		t.Errorf("Props[a] = %v, want 1", v)
	}
}

func TestNodeGetArgsAndGetProps(t *testing.T) {
	n := NewNode("foo")
	tagged := NewString("x")
	tagged.Tag = "uuid"
	n.AddArg(NewInt(1))
	n.AddArg(tagged)
	n.SetProp("untouched", NewInt(2))
	n.SetProp("id", tagged)

	args := n.GetArgs(ByTag(ExactName("uuid")))
	if len(args) != 1 || args[0] != tagged {
		t.Errorf("GetArgs(uuid) = %v, want [tagged]", args)
	}

	props := n.GetProps(ByTag(ExactName("uuid")))
	if len(props) != 1 || props["id"] != tagged {
		t.Errorf("GetProps(uuid) = %v, want {id: tagged}", props)
	}
}
