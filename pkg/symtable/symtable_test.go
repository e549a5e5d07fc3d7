package symtable_test

import (
	"testing"

	"github.com/Le36/ezcompiler/pkg/symtable"
)

func TestLookup(t *testing.T) {
	test := func(table *symtable.Table[int], name string, expected int, fail bool) {
		got, err := table.Lookup(name)
		if fail {
			if err == nil {
				t.Fail()
			}
			return
		}
		if err != nil || got != expected {
			t.Fail()
		}
	}

	root := symtable.New[int]()
	root.Define("x", 1)

	t.Run("Valid data", func(t *testing.T) {
		test(root, "x", 1, false)
	})

	t.Run("Invalid data", func(t *testing.T) {
		test(root, "y", 0, true)
	})
}

func TestChildScopeShadowing(t *testing.T) {
	root := symtable.New[int]()
	root.Define("x", 1)

	child := root.NewChild()
	child.Define("x", 2)

	if v, err := child.Lookup("x"); err != nil || v != 2 {
		t.Fail()
	}
	if v, err := root.Lookup("x"); err != nil || v != 1 {
		t.Fail()
	}
}

func TestChildSeesParentBindings(t *testing.T) {
	root := symtable.New[int]()
	root.Define("x", 1)

	child := root.NewChild()
	if v, err := child.Lookup("x"); err != nil || v != 1 {
		t.Fail()
	}
}

func TestChildDefinitionsDoNotLeakToParent(t *testing.T) {
	root := symtable.New[int]()
	child := root.NewChild()
	child.Define("y", 5)

	if root.Has("y") {
		t.Fail()
	}
	if !child.Has("y") {
		t.Fail()
	}
}

func TestUpdateOrDefineRebindsOwningFrame(t *testing.T) {
	root := symtable.New[int]()
	root.Define("x", 1)
	child := root.NewChild()

	child.UpdateOrDefine("x", 99)

	if v, err := root.Lookup("x"); err != nil || v != 99 {
		t.Fail()
	}
	if !child.Has("x") {
		t.Fail()
	}
}

func TestUpdateOrDefineDefinesFreshWhenUnbound(t *testing.T) {
	root := symtable.New[int]()
	root.UpdateOrDefine("z", 7)

	if v, err := root.Lookup("z"); err != nil || v != 7 {
		t.Fail()
	}
}
