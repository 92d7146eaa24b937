package app

import "fmt"

// Navigation signals travel as error values through selection handlers and
// actions. Each frame of the menu stack interprets them: Retry re-shows
// the current frame, Back pops frames, Return pops the whole stack with a
// value, and Quit/Timeout terminate the session.

// RetrySignal re-shows the current frame. Refresh names the trigger and
// asks for an item rebuild; an empty Refresh re-shows the existing window
// as is. Selection, when non-nil, seeds the marks after the rebuild.
type RetrySignal struct {
	Refresh   string
	Selection []interface{}
}

func (s *RetrySignal) Error() string {
	return "app: retry (" + s.Refresh + ")"
}

// BackSignal pops Levels frames off the menu stack. Each frame it crosses
// decrements Levels; the frame that sees zero absorbs the signal and shows
// itself again, rebuilding its items when Refresh is set.
type BackSignal struct {
	Levels  int
	Refresh bool
}

func (s *BackSignal) Error() string {
	return fmt.Sprintf("app: back %d level(s)", s.Levels)
}

// QuitSignal unwinds the whole stack and ends the session.
type QuitSignal struct{}

func (s *QuitSignal) Error() string {
	return "app: quit"
}

// ReturnSignal unwinds the whole stack, carrying the session's result.
type ReturnSignal struct {
	Value interface{}
}

func (s *ReturnSignal) Error() string {
	return "app: return"
}

// TimeoutSignal reports that a frame's deadline expired.
type TimeoutSignal struct{}

func (s *TimeoutSignal) Error() string {
	return "app: timed out"
}

// Retry re-shows the current frame with rebuilt items.
func Retry() error {
	return &RetrySignal{Refresh: "retry"}
}

// RetryWith re-shows the current frame, naming the refresh trigger and
// seeding the selection marks.
func RetryWith(refresh string, selection []interface{}) error {
	return &RetrySignal{Refresh: refresh, Selection: selection}
}

// Back pops the given number of frames; refresh rebuilds the items of the
// frame that ends up on top.
func Back(levels int, refresh bool) error {
	return &BackSignal{Levels: levels, Refresh: refresh}
}

// Quit ends the session.
func Quit() error {
	return &QuitSignal{}
}

// Return ends the session with a value.
func Return(value interface{}) error {
	return &ReturnSignal{Value: value}
}
