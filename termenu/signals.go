package termenu

// Window signals are ordinary error values so key hooks can raise them
// through the normal return path. Show surfaces them to the caller, who
// decides whether to rebuild, time out, or treat the selection as final.

// RefreshSignal asks the caller to rebuild the option list and show the
// window again. Source records what triggered it ("user", "heartbeat",
// "signal", ...).
type RefreshSignal struct {
	Source string
}

func (s *RefreshSignal) Error() string {
	return "termenu: refresh (" + s.Source + ")"
}

// TimeoutSignal reports that the window's deadline passed with no input.
type TimeoutSignal struct{}

func (s *TimeoutSignal) Error() string {
	return "termenu: timed out"
}

// HelpSignal asks the caller to present its help screen.
type HelpSignal struct{}

func (s *HelpSignal) Error() string {
	return "termenu: help requested"
}

// InterruptSignal reports that the user hit ctrl-c.
type InterruptSignal struct{}

func (s *InterruptSignal) Error() string {
	return "termenu: interrupted"
}

// SelectSignal carries a selection decided by a key hook instead of the
// enter key.
type SelectSignal struct {
	Selection Selection
}

func (s *SelectSignal) Error() string {
	return "termenu: selection made"
}

// Refresh returns a RefreshSignal for use inside key hooks.
func Refresh(source string) error {
	return &RefreshSignal{Source: source}
}

// Help returns a HelpSignal for use inside key hooks.
func Help() error {
	return &HelpSignal{}
}
