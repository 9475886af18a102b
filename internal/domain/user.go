// Package domain contains core domain types for the scaffolder backend.
package domain

import (
	"time"
)

// Competency levels run from MinLevel to MaxLevel inclusive.
const (
	MinLevel = 1
	MaxLevel = 6
)

// UserLevel is a reader's current proficiency on the three competency axes.
type UserLevel struct {
	EmpState int `json:"emp_state"`
	AseState int `json:"ase_state"`
	IntState int `json:"int_state"`
}

// DefaultUserLevel is the level assigned to readers with no stored profile.
func DefaultUserLevel() UserLevel {
	return UserLevel{EmpState: MinLevel, AseState: MinLevel, IntState: MinLevel}
}

// Clamped returns a copy with every axis forced into [MinLevel, MaxLevel].
func (l UserLevel) Clamped() UserLevel {
	return UserLevel{
		EmpState: ClampLevel(l.EmpState),
		AseState: ClampLevel(l.AseState),
		IntState: ClampLevel(l.IntState),
	}
}

// ClampLevel forces n into [MinLevel, MaxLevel].
func ClampLevel(n int) int {
	if n < MinLevel {
		return MinLevel
	}
	if n > MaxLevel {
		return MaxLevel
	}
	return n
}

// GoalLevel returns the level a reader at current should be moved toward.
// It never exceeds MaxLevel.
func GoalLevel(current int) int {
	return min(MaxLevel, ClampLevel(current)+1)
}

// UserProfile is the persisted competency record of a reader.
type UserProfile struct {
	UserName    string    `json:"user_name"`
	Level       UserLevel `json:"states"`
	LastUpdated time.Time `json:"last_updated"`
}
