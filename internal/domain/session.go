package domain

import (
	"fmt"
	"strings"
)

// DefaultReaderName is used when a chat request carries no reader name.
const DefaultReaderName = "학생"

// Poem is one entry of the poem catalog.
type Poem struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Role tags a chat message with its speaker.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole validates a wire role string.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleSystem, RoleUser, RoleAssistant:
		return r, nil
	default:
		return "", fmt.Errorf("unknown message role %q", s)
	}
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SessionState is rebuilt from the request payload on every call and
// never persisted. History is the one conversation the invoked route
// supplied: an agent's own history, or the history shared by the tutors.
type SessionState struct {
	UserName string
	Poem     Poem
	Level    UserLevel
	History  []Message
}

// ReaderName returns the reader's name, falling back to DefaultReaderName.
func (s *SessionState) ReaderName() string {
	if name := strings.TrimSpace(s.UserName); name != "" {
		return name
	}
	return DefaultReaderName
}

// IsFirstTurn reports whether no messages have been exchanged yet.
func (s *SessionState) IsFirstTurn() bool {
	return len(s.History) == 0
}
