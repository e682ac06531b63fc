package testutil

import (
	"errors"
	"testing"
)

// mockTB records whether an assertion failed without aborting the
// surrounding test.
type mockTB struct {
	testing.TB
	failed bool
}

func (m *mockTB) Helper() {}

func (m *mockTB) Fatalf(format string, args ...any) { m.failed = true }

func (m *mockTB) Fatal(args ...any) { m.failed = true }

func TestEqual(t *testing.T) {
	m := &mockTB{}
	Equal(m, 1, 1)
	if m.failed {
		t.Error("Equal failed on equal values")
	}
	m = &mockTB{}
	Equal(m, 1, 2)
	if !m.failed {
		t.Error("Equal passed on unequal values")
	}
	m = &mockTB{}
	Equal(m, "a", "a")
	if m.failed {
		t.Error("Equal failed on equal strings")
	}
}

func TestSliceEqual(t *testing.T) {
	m := &mockTB{}
	SliceEqual(m, []int{1, 2, 3}, []int{1, 2, 3})
	if m.failed {
		t.Error("SliceEqual failed on equal slices")
	}
	m = &mockTB{}
	SliceEqual(m, []int{1, 2}, []int{1, 2, 3})
	if !m.failed {
		t.Error("SliceEqual passed on slices of different length")
	}
	m = &mockTB{}
	SliceEqual(m, []string{"a"}, []string{"b"})
	if !m.failed {
		t.Error("SliceEqual passed on different contents")
	}
	m = &mockTB{}
	SliceEqual(m, nil, []int{})
	if m.failed {
		t.Error("SliceEqual failed on nil vs empty")
	}
}

func TestNoError(t *testing.T) {
	m := &mockTB{}
	NoError(m, nil)
	if m.failed {
		t.Error("NoError failed on nil error")
	}
	m = &mockTB{}
	NoError(m, errors.New("boom"))
	if !m.failed {
		t.Error("NoError passed on non-nil error")
	}
}

func TestError(t *testing.T) {
	m := &mockTB{}
	Error(m, errors.New("boom"))
	if m.failed {
		t.Error("Error failed on non-nil error")
	}
	m = &mockTB{}
	Error(m, nil)
	if !m.failed {
		t.Error("Error passed on nil error")
	}
}

func TestErrorIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	m := &mockTB{}
	ErrorIs(m, sentinel, sentinel)
	if m.failed {
		t.Error("ErrorIs failed on matching error")
	}
	m = &mockTB{}
	ErrorIs(m, errors.New("other"), sentinel)
	if !m.failed {
		t.Error("ErrorIs passed on non-matching error")
	}
}

func TestNil(t *testing.T) {
	m := &mockTB{}
	Nil(m, nil)
	if m.failed {
		t.Error("Nil failed on nil")
	}
	var p *int
	m = &mockTB{}
	Nil(m, p)
	if m.failed {
		t.Error("Nil failed on typed nil pointer")
	}
	m = &mockTB{}
	Nil(m, []int{})
	if !m.failed {
		t.Error("Nil passed on empty non-nil slice")
	}
	m = &mockTB{}
	Nil(m, 42)
	if !m.failed {
		t.Error("Nil passed on non-nil value")
	}
}

func TestNotNil(t *testing.T) {
	m := &mockTB{}
	NotNil(m, 42)
	if m.failed {
		t.Error("NotNil failed on non-nil value")
	}
	m = &mockTB{}
	NotNil(m, []int{})
	if m.failed {
		t.Error("NotNil failed on empty non-nil slice")
	}
	m = &mockTB{}
	NotNil(m, nil)
	if !m.failed {
		t.Error("NotNil passed on nil")
	}
	var p *int
	m = &mockTB{}
	NotNil(m, p)
	if !m.failed {
		t.Error("NotNil passed on typed nil pointer")
	}
}

func TestNotEmpty(t *testing.T) {
	m := &mockTB{}
	NotEmpty(m, []int{1})
	if m.failed {
		t.Error("NotEmpty failed on non-empty slice")
	}
	m = &mockTB{}
	NotEmpty(m, []int{})
	if !m.failed {
		t.Error("NotEmpty passed on empty slice")
	}
}

func TestLen(t *testing.T) {
	m := &mockTB{}
	Len(m, []int{1, 2, 3}, 3)
	if m.failed {
		t.Error("Len failed on matching length")
	}
	m = &mockTB{}
	Len(m, []int{1}, 2)
	if !m.failed {
		t.Error("Len passed on mismatched length")
	}
}

func TestTrueFalse(t *testing.T) {
	m := &mockTB{}
	True(m, true)
	if m.failed {
		t.Error("True failed on true")
	}
	m = &mockTB{}
	True(m, false)
	if !m.failed {
		t.Error("True passed on false")
	}
	m = &mockTB{}
	False(m, false)
	if m.failed {
		t.Error("False failed on false")
	}
	m = &mockTB{}
	False(m, true)
	if !m.failed {
		t.Error("False passed on true")
	}
}

func TestContains(t *testing.T) {
	m := &mockTB{}
	Contains(m, "hello world", "world")
	if m.failed {
		t.Error("Contains failed on present substring")
	}
	m = &mockTB{}
	Contains(m, "hello", "world")
	if !m.failed {
		t.Error("Contains passed on absent substring")
	}
}

func TestGreater(t *testing.T) {
	m := &mockTB{}
	Greater(m, 2, 1)
	if m.failed {
		t.Error("Greater failed on 2 > 1")
	}
	m = &mockTB{}
	Greater(m, 1, 2)
	if !m.failed {
		t.Error("Greater passed on 1 > 2")
	}
	m = &mockTB{}
	Greater(m, 1, 1)
	if !m.failed {
		t.Error("Greater passed on equal values")
	}
	m = &mockTB{}
	Greater(m, 2.5, 1.5)
	if m.failed {
		t.Error("Greater failed on floats")
	}
	m = &mockTB{}
	Greater(m, "b", "a")
	if m.failed {
		t.Error("Greater failed on strings")
	}
}

func TestFail(t *testing.T) {
	m := &mockTB{}
	Fail(m, "forced failure")
	if !m.failed {
		t.Error("Fail did not fail")
	}
}

func TestFormatMsg(t *testing.T) {
	if got := formatMsg(nil); got != "assertion failed" {
		t.Errorf("formatMsg(nil) = %q", got)
	}
	if got := formatMsg([]any{"plain"}); got != "plain" {
		t.Errorf("formatMsg(plain) = %q", got)
	}
	if got := formatMsg([]any{"value %d", 7}); got != "value 7" {
		t.Errorf("formatMsg(formatted) = %q", got)
	}
	if got := formatMsg([]any{42}); got != "assertion failed" {
		t.Errorf("formatMsg(non-string) = %q", got)
	}
}
