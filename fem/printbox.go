// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cpmech/gosl/io"
)

var (
	boxFailure = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 2)
	boxRestart = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 2)
	boxTitle   = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
)

// printBox prints a boxed message
func printBox(style lipgloss.Style, title string, lines ...string) {
	body := boxTitle.Render(title)
	if len(lines) > 0 {
		body += "\n\n" + strings.Join(lines, "\n")
	}
	io.Pf("%s\n", style.Render(body))
}

// printFailure prints the reason of a step failure
func printFailure(f *Failure, t, dt float64) {
	if f.Kind == NegativeJacobian {
		printBox(boxFailure, "NEGATIVE JACOBIAN DETECTED",
			io.Sf("element : %d", f.Elem),
			io.Sf("ip      : %d", f.Ip),
			io.Sf("volume  : %g", f.Vol),
			io.Sf("time    : %g", t),
		)
		return
	}
	printBox(boxFailure, strings.ToUpper(f.Kind.String()),
		io.Sf("time : %g", t),
		io.Sf("dt   : %g", dt),
		f.Error(),
	)
}

// printRestart prints the new attempt of a failed step
func printRestart(t, dt float64, retry, maxRetries int) {
	printBox(boxRestart, "- R E S T A R T -",
		io.Sf("time  : %g", t),
		io.Sf("dt    : %g", dt),
		io.Sf("retry : %d of %d", retry, maxRetries),
	)
}
