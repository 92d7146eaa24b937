// Command termenu shows an interactive selection menu over items given as
// arguments or piped on stdin, and prints the selection to stdout. The
// menu itself is drawn on the controlling terminal, so the command can sit
// in the middle of a pipeline.
//
//	ls | termenu -title "Pick a file" -multiselect
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/weka/termenu/ansi"
	"github.com/weka/termenu/internal/logging"
	"github.com/weka/termenu/internal/logging/events"
	"github.com/weka/termenu/keyboard"
	"github.com/weka/termenu/termenu"
	"golang.org/x/term"
)

const (
	exitAborted = 1
	exitUsage   = 2
	exitTimeout = 3
)

type cliConfig struct {
	Title       string
	Default     string
	Multiselect bool
	Inline      bool
	Height      int
	Timeout     time.Duration
	LogFile     string
	Trace       bool
	Items       []string
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	fs := flag.NewFlagSet("termenu", flag.ContinueOnError)
	fs.StringVar(&cfg.Title, "title", "", "menu title (may contain color markup)")
	fs.StringVar(&cfg.Default, "default", "", "item the cursor starts on")
	fs.BoolVar(&cfg.Multiselect, "multiselect", false, "allow marking multiple items")
	fs.BoolVar(&cfg.Inline, "inline", false, "show a one-line horizontal picker")
	fs.IntVar(&cfg.Height, "height", 0, "maximum menu height (0 = fit the terminal)")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "give up after this long without a choice")
	fs.StringVar(&cfg.LogFile, "log", "", "write a JSON log to this file")
	fs.BoolVar(&cfg.Trace, "trace", false, "enable trace logging")
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	cfg.Items = fs.Args()
	return cfg, nil
}

// readItems returns the menu items: the positional arguments, or stdin
// lines when none are given.
func readItems(cfg cliConfig) ([]string, error) {
	if len(cfg.Items) > 0 {
		return cfg.Items, nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("no items: pass them as arguments or pipe them on stdin")
	}
	var items []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return items, nil
}

// pickTerminal chooses where to interact: stdin when it is a terminal,
// the controlling tty otherwise (stdin may be the item pipe, and stdout
// may be the result pipe).
func pickTerminal() (*keyboard.Terminal, *ansi.Screen, func(), error) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return keyboard.NewTerminal(), ansi.Stdout(), func() {}, nil
	}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open controlling terminal: %w", err)
	}
	return keyboard.NewTerminalFiles(tty, tty), ansi.NewScreen(tty), func() { tty.Close() }, nil
}

func run(cfg cliConfig) int {
	items, err := readItems(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to choose from")
		return exitUsage
	}

	terminal, screen, done, err := pickTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	defer done()

	if cfg.Inline {
		mini := termenu.NewMinimenuOn(terminal, screen, items, cfg.Default)
		choice, ok, err := mini.Show()
		if err != nil {
			logging.Error(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		}
		if !ok {
			return exitAborted
		}
		fmt.Println(choice)
		return 0
	}

	options := make([]*termenu.Option, len(items))
	for i, item := range items {
		options[i] = termenu.Text(item)
	}
	win := termenu.NewWindow(terminal, screen, termenu.WindowOptions{
		Timeout: cfg.Timeout,
	})
	win.Reset(cfg.Title, "", options, cfg.Height, cfg.Multiselect, nil)

	var defaultResult interface{}
	if cfg.Default != "" {
		defaultResult = cfg.Default
	}
	for {
		sel, err := win.Show(defaultResult)
		if err != nil {
			var refresh *termenu.RefreshSignal
			if errors.As(err, &refresh) {
				// rebuild so the countdown title stays current
				win.Reset(cfg.Title, "", options, cfg.Height, cfg.Multiselect, nil)
				continue
			}
			var timeout *termenu.TimeoutSignal
			if errors.As(err, &timeout) {
				return exitTimeout
			}
			var interrupt *termenu.InterruptSignal
			if errors.As(err, &interrupt) {
				return exitAborted
			}
			var help *termenu.HelpSignal
			if errors.As(err, &help) {
				continue
			}
			logging.Error(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitUsage
		}
		if sel.Aborted {
			return exitAborted
		}
		for _, v := range sel.Values {
			fmt.Println(v)
		}
		return 0
	}
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(exitUsage)
	}
	logging.Configure(cfg.LogFile)
	logging.SetTraceEnabled(cfg.Trace)
	events.App.Start(startupTracePayload(cfg))
	os.Exit(run(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg cliConfig) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":        os.Args[1:],
		"title":       cfg.Title,
		"multiselect": cfg.Multiselect,
		"inline":      cfg.Inline,
		"timeout":     cfg.Timeout.String(),
		"trace":       cfg.Trace,
		"logFile":     cfg.LogFile,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and
// dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
