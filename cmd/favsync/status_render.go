package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
)

// statusPrinter writes the aligned label/status lines used by the status
// command. Color is applied only when the destination is a terminal.
type statusPrinter struct {
	out      io.Writer
	colorize bool
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	colorize := false
	if file, ok := out.(*os.File); ok {
		fd := file.Fd()
		colorize = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &statusPrinter{out: out, colorize: colorize}
}

// section prints a titled header with an underline rule.
func (p *statusPrinter) section(title string) {
	header := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(header))
	if p.colorize {
		header = colorBlue + header + colorReset
		rule = colorBlue + rule + colorReset
	}
	fmt.Fprintln(p.out, header)
	fmt.Fprintln(p.out, rule)
}

// line prints one "  Label:  [KIND] message" row with the label column
// padded to a fixed width so statuses line up.
func (p *statusPrinter) line(label string, kind statusKind, message string) {
	status := "[" + kind.String() + "]"
	if message != "" {
		status += " " + message
	}
	row := fmt.Sprintf("  %-20s %s", label+":", status)
	if p.colorize {
		if c := kind.color(); c != "" {
			row = c + row + colorReset
		}
	}
	fmt.Fprintln(p.out, row)
}

func (p *statusPrinter) blank() {
	fmt.Fprintln(p.out)
}

func (k statusKind) String() string {
	switch k {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (k statusKind) color() string {
	switch k {
	case statusOK:
		return colorGreen
	case statusWarn:
		return colorYellow
	case statusError:
		return colorRed
	default:
		return colorBlue
	}
}
