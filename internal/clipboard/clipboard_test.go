package clipboard

import "testing"

func TestMemory(t *testing.T) {
	var m Memory

	if _, ok := m.Read(); ok {
		t.Error("empty clipboard reported text")
	}
	m.Write("hello")
	if got, ok := m.Read(); !ok || got != "hello" {
		t.Errorf("Read() = %q, %v", got, ok)
	}
	m.Write("")
	if _, ok := m.Read(); ok {
		t.Error("clipboard holding an empty string reported text")
	}
}

func TestSystemFallsBackWhenUnsupported(t *testing.T) {
	s := NewSystem(nil)
	if s.Available() {
		t.Skip("system clipboard present")
	}

	s.Write("copied")
	if got, ok := s.Read(); !ok || got != "copied" {
		t.Errorf("Read() = %q, %v", got, ok)
	}
}
