package report

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// displayTagged displays a message preceded by a highlighted tag.
func displayTagged(w io.Writer, tagStyle *pterm.Style, msgColor pterm.Color, tag, msg string) {
	fmt.Fprintln(w, tagStyle.Sprint(tag)+" "+msgColor.Sprint(msg))
}

func displayError(w io.Writer, tag, msg string) {
	displayTagged(w, ErrorStyleBG, ErrorColorFG, tag+" Error", msg)
}

func displayWarning(w io.Writer, tag, msg string) {
	displayTagged(w, WarnStyleBG, WarnColorFG, tag+" Warning", msg)
}

func displayInfo(w io.Writer, tag, msg string) {
	displayTagged(w, InfoStyleBG, InfoColorFG, tag, msg)
}

func displaySuccess(w io.Writer, tag, msg string) {
	displayTagged(w, SuccessStyleBG, SuccessColorFG, tag, msg)
}

func displayFatal(w io.Writer, msg string) {
	displayTagged(w, ErrorStyleBG, ErrorColorFG, "Fatal Error", msg)
}
