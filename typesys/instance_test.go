package typesys

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
)

func testInstance(t *testing.T) (*Type, *Instance) {
	t.Helper()
	reg := NewRegistry()
	typ := declare(t, testModule(t, reg, "m"), "Widget")
	typ.Define("label", "panel")
	typ.Define("render", Func(func(self *Instance, args ...Value) (Value, error) {
		return fmt.Sprintf("render:%d", len(args)), nil
	}))
	return typ, typ.New()
}

func TestInstanceAttr(t *testing.T) {
	_, in := testInstance(t)

	if v, err := in.Attr("label"); err != nil || v != "panel" {
		t.Errorf("label = %v, %v", v, err)
	}

	in.SetAttr("label", "local")
	if v, _ := in.Attr("label"); v != "local" {
		t.Errorf("local shadow = %v", v)
	}

	_, err := in.Attr("ghost")
	if !errors.Is(err, ErrNoSuchMember) {
		t.Errorf("Attr(ghost) = %v", err)
	}
	var nsm *NoSuchMemberError
	if !errors.As(err, &nsm) || nsm.Member != "ghost" {
		t.Errorf("error detail = %v", err)
	}
}

func TestInstanceSetAttrEmptyName(t *testing.T) {
	_, in := testInstance(t)
	in.SetAttr("", "ghost")
	if slices.Contains(in.Dir(), "") {
		t.Error("empty attribute name stored")
	}
}

func TestInstanceDir(t *testing.T) {
	_, in := testInstance(t)
	in.SetAttr("session", 7)

	dir := in.Dir()
	if !slices.IsSorted(dir) {
		t.Errorf("Dir not sorted: %v", dir)
	}
	for _, want := range []string{"label", "render", "session", "__init__"} {
		if !slices.Contains(dir, want) {
			t.Errorf("Dir missing %s: %v", want, dir)
		}
	}
	if len(dir) != len(slices.Compact(slices.Clone(dir))) {
		t.Errorf("Dir has duplicates: %v", dir)
	}
}

func TestInstanceCall(t *testing.T) {
	_, in := testInstance(t)

	v, err := in.Call("render", 1, 2)
	if err != nil || v != "render:2" {
		t.Errorf("Call(render) = %v, %v", v, err)
	}

	if _, err := in.Call("label"); !errors.Is(err, ErrNotCallable) {
		t.Errorf("Call(label) = %v", err)
	}
	if _, err := in.Call("ghost"); !errors.Is(err, ErrNoSuchMember) {
		t.Errorf("Call(ghost) = %v", err)
	}
}

func TestInstanceIdentity(t *testing.T) {
	typ, first := testInstance(t)
	second := typ.New()
	if first.ID() == second.ID() {
		t.Error("instance IDs collide")
	}
	if first.Type() != typ {
		t.Error("Type() mismatch")
	}
	want := fmt.Sprintf("<m::Widget #%d>", first.ID())
	if first.String() != want {
		t.Errorf("String = %q, want %q", first.String(), want)
	}
}

func TestInstanceConcurrentAttrs(t *testing.T) {
	_, in := testInstance(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("slot%d", i)
			in.SetAttr(name, i)
			if v, err := in.Attr(name); err != nil || v != i {
				t.Errorf("%s = %v, %v", name, v, err)
			}
			in.Dir()
		}()
	}
	wg.Wait()

	var slots int
	for _, name := range in.Dir() {
		if strings.HasPrefix(name, "slot") {
			slots++
		}
	}
	if slots != 8 {
		t.Errorf("stored slots = %d", slots)
	}
}
