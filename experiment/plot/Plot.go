// Package plot renders the data tracked during experiments as HTML
// line charts
package plot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named sequence of values, one per epoch
type Series struct {
	Name string
	Data []float64
}

// Lines renders all series on a single line chart titled title and
// writes the chart as an HTML page to w. The x-axis counts epochs from
// 1 up to the length of the longest series.
func Lines(w io.Writer, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("lines: no series to plot")
	}

	var epochs int
	for _, s := range series {
		if len(s.Data) > epochs {
			epochs = len(s.Data)
		}
	}
	x := make([]string, epochs)
	for i := range x {
		x[i] = strconv.Itoa(i + 1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Epoch",
		}),
	)

	line = line.SetXAxis(x)
	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Data))
		for _, v := range s.Data {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("lines: %v", err)
	}
	return nil
}

// Save renders the series as with Lines to the file filename, creating
// its directory if needed
func Save(filename, title string, series ...Series) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}
	defer f.Close()

	return Lines(f, title, series...)
}
