// Package einfo prints OpenRC-style status lines: informational messages
// with a green marker, warnings in yellow, errors in red on stderr. The
// EINFO_QUIET and EINFO_VERBOSE environment toggles mirror the behavior of
// the classic einfo library.
package einfo

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Reporter emits status lines for mutations and advisories. Info and Warn
// go to out, Error goes to errOut. A quiet reporter suppresses Info lines
// but never warnings or errors.
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	profile termenv.Profile
	quiet   bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithQuiet suppresses informational output.
func WithQuiet(quiet bool) Option {
	return func(r *Reporter) {
		r.quiet = quiet
	}
}

// WithProfile overrides the detected color profile.
func WithProfile(p termenv.Profile) Option {
	return func(r *Reporter) {
		r.profile = p
	}
}

// New creates a Reporter on stdout/stderr. Colors are enabled only when
// stdout is a terminal. EINFO_QUIET is honored unless overridden.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		out:     os.Stdout,
		errOut:  os.Stderr,
		profile: termenv.Ascii,
		quiet:   Yes(os.Getenv("EINFO_QUIET")),
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		r.profile = termenv.ColorProfile()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewWriter creates a Reporter on the given writers with colors disabled.
// Used by tests and by the HTTP surface, which has no terminal.
func NewWriter(out, errOut io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:     out,
		errOut:  errOut,
		profile: termenv.Ascii,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Infof prints an informational status line.
func (r *Reporter) Infof(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, " %s %s\n", r.marker("2"), fmt.Sprintf(format, args...))
}

// Warnf prints a warning. Warnings surface advisories (already installed,
// nothing deleted); they never affect the process outcome.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.out, " %s %s\n", r.marker("3"), fmt.Sprintf(format, args...))
}

// Errorf prints an error line to stderr.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, " %s %s\n", r.marker("1"), fmt.Sprintf(format, args...))
}

func (r *Reporter) marker(ansi string) string {
	return r.profile.String("*").Foreground(r.profile.Color(ansi)).Bold().String()
}

// Yes interprets an einfo-style boolean environment value. "yes", "y",
// "true", "on" and "1" (any case) mean true; everything else means false.
func Yes(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "true", "on", "1":
		return true
	default:
		return false
	}
}

// Verbose reports whether EINFO_VERBOSE requests verbose output.
func Verbose() bool {
	return Yes(os.Getenv("EINFO_VERBOSE"))
}
