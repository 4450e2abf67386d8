package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type palette struct {
	good *color.Color
	bad  *color.Color
	note *color.Color
}

func newPalette(mode string, out io.Writer) palette {
	p := palette{
		good: color.New(color.FgGreen, color.Bold),
		bad:  color.New(color.FgRed, color.Bold),
		note: color.New(color.Faint),
	}
	enabled := false
	switch mode {
	case "always":
		enabled = true
	case "never":
	default:
		enabled = colorTerminal(out)
	}
	for _, c := range []*color.Color{p.good, p.bad, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// colorTerminal follows the NO_COLOR convention and requires a terminal.
func colorTerminal(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// verdict renders ok as good and !ok as bad.
func (p palette) verdict(ok bool, yes, no string) string {
	if ok {
		return p.good.Sprint(yes)
	}
	return p.bad.Sprint(no)
}
