package domain

import "testing"

func TestGoalLevel(t *testing.T) {
	for level := MinLevel; level <= MaxLevel; level++ {
		want := level + 1
		if want > MaxLevel {
			want = MaxLevel
		}
		if got := GoalLevel(level); got != want {
			t.Errorf("GoalLevel(%d) = %d, want %d", level, got, want)
		}
	}
	if got := GoalLevel(MaxLevel); got != MaxLevel {
		t.Fatalf("GoalLevel at the top level overflowed: %d", got)
	}
}

func TestUserLevelClamped(t *testing.T) {
	got := UserLevel{EmpState: 0, AseState: 9, IntState: 3}.Clamped()
	want := UserLevel{EmpState: 1, AseState: 6, IntState: 3}
	if got != want {
		t.Fatalf("Clamped() = %+v, want %+v", got, want)
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("assistant"); err != nil || r != RoleAssistant {
		t.Fatalf("ParseRole(assistant) = %q, %v", r, err)
	}
	if _, err := ParseRole("model"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestReaderNameFallback(t *testing.T) {
	s := &SessionState{UserName: "  "}
	if got := s.ReaderName(); got != DefaultReaderName {
		t.Fatalf("ReaderName() = %q, want %q", got, DefaultReaderName)
	}
}
