// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/guptarohit/asciigraph"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label; e.g. "t"
	Ylbl  string    // vertical axis label; e.g. "ux"
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Title string       // title of subplot
	Data  []*PltEntity // data to be plotted
}

// plot sizes
var (
	Width  = 60 // number of columns of the plot area
	Height = 12 // number of rows of the plot area
)

// Splot activates a new subplot window
func (o *Reader) Splot(title string) {
	s := &SplotDat{Title: title}
	o.Splots = append(o.Splots, s)
	o.Csplot = s
}

// Plot adds data to the current subplot
//  xHandle -- can be a string, e.g. "t" or a slice, e.g. pc = []float64{0, 1, 2}
//  yHandle -- can be a string, e.g. "uz" or a slice, e.g. sl = []float64{0, 1, 2}
//  alias   -- alias such as "centre"
//  idxI    -- index of time; use -1 for all times
func (o *Reader) Plot(xHandle, yHandle interface{}, alias string, idxI int) (err error) {
	e := &PltEntity{Alias: alias}
	if e.X, e.Xlbl, err = o.getValsAndLabels(xHandle, alias, idxI); err != nil {
		return
	}
	if e.Y, e.Ylbl, err = o.getValsAndLabels(yHandle, alias, idxI); err != nil {
		return
	}
	if len(e.X) != len(e.Y) {
		return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d, x=%v, y=%v", len(e.X), len(e.Y), xHandle, yHandle)
	}
	if o.Csplot == nil {
		o.Splot("")
	}
	o.Csplot.Data = append(o.Csplot.Data, e)
	return
}

// Draw renders all subplots as text
func (o *Reader) Draw() string {
	var sb strings.Builder
	for _, s := range o.Splots {
		if len(s.Data) == 0 {
			continue
		}
		var series [][]float64
		var names []string
		for _, d := range s.Data {
			series = append(series, Resample(d.X, d.Y, Width))
			names = append(names, d.Alias)
		}
		d0 := s.Data[0]
		caption := d0.Ylbl + " vs " + d0.Xlbl
		if s.Title != "" {
			caption = s.Title + ": " + caption
		}
		opts := []asciigraph.Option{
			asciigraph.Height(Height),
			asciigraph.Caption(caption),
		}
		if len(series) > 1 {
			opts = append(opts, asciigraph.SeriesColors(seriesColors(len(series))...), asciigraph.SeriesLegends(names...))
		}
		sb.WriteString(asciigraph.PlotMany(series, opts...))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Resample interpolates y(x) at n equally spaced x-values
// If x is not increasing, points are sorted first
func Resample(x, y []float64, n int) (res []float64) {
	if len(x) < 2 || n < 2 {
		return append([]float64{}, y...)
	}
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	xa, xb := x[idx[0]], x[idx[len(idx)-1]]
	if xb <= xa {
		return append([]float64{}, y...)
	}
	res = make([]float64, n)
	k := 0
	for i := 0; i < n; i++ {
		xi := xa + (xb-xa)*float64(i)/float64(n-1)
		for k < len(idx)-2 && x[idx[k+1]] < xi {
			k++
		}
		x0, x1 := x[idx[k]], x[idx[k+1]]
		y0, y1 := y[idx[k]], y[idx[k+1]]
		if x1 == x0 {
			res[i] = y1
			continue
		}
		res[i] = y0 + (y1-y0)*(xi-x0)/(x1-x0)
	}
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

func (o *Reader) getValsAndLabels(handle interface{}, alias string, idxI int) ([]float64, string, error) {
	switch hnd := handle.(type) {
	case []float64:
		return hnd, alias, nil
	case string:
		switch hnd {
		case "t":
			return o.Times, "t", nil
		case "x":
			x, _, _ := o.GetXYZ(alias)
			return x, "x", nil
		case "y":
			_, y, _ := o.GetXYZ(alias)
			return y, "y", nil
		case "z":
			_, _, z := o.GetXYZ(alias)
			return z, "z", nil
		case "dist":
			return o.GetDist(alias), "dist", nil
		}
		v, err := o.GetRes(hnd, alias, idxI)
		return v, hnd, err
	}
	return nil, "", chk.Err("cannot get values slice with handle = %v", handle)
}

func seriesColors(n int) (colors []asciigraph.AnsiColor) {
	palette := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan}
	for i := 0; i < n; i++ {
		colors = append(colors, palette[i%len(palette)])
	}
	return
}
