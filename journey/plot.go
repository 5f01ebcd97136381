package journey

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderRatingsChart writes a standalone interactive bar chart of per-step
// mean signed ratings. Bars follow the order of averages (taxonomy order)
// and the score axis is fixed to the full -2..+2 range so runs stay
// visually comparable.
func RenderRatingsChart(averages []StepAverage, outPath string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average Rating By Journey Step"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Journey Step",
			AxisLabel: &opts.AxisLabel{
				Show:   opts.Bool(true),
				Rotate: -45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Average Rating (-2 to +2)",
			Min:  -2,
			Max:  2,
			// Four splits over [-2, 2] puts a tick on every whole score.
			SplitNumber: 4,
		}),
	)

	names := make([]string, 0, len(averages))
	data := make([]opts.BarData, 0, len(averages))
	for _, a := range averages {
		names = append(names, a.StepName)
		data = append(data, opts.BarData{Value: a.Mean})
	}
	bar.SetXAxis(names).AddSeries("Average Rating", data)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
