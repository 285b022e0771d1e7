package infrastructure

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	analysisdomain "tempwatch-v0/internal/analysis/domain"
	ingestdomain "tempwatch-v0/internal/ingest/domain"
	"tempwatch-v0/internal/report/domain"
)

// ChartWriter renders the sampled series with fitted trend curves overlaid
// and saves it as a PNG.
type ChartWriter struct {
	path string
}

// NewChartWriter creates a chart writer targeting the given file path
func NewChartWriter(path string) *ChartWriter {
	return &ChartWriter{
		path: path,
	}
}

// Write renders the chart and saves it. The parent directory is created if
// missing. Any failure is an OutputError; the caller treats it as non-fatal.
func (w *ChartWriter) Write(series ingestdomain.Series, trend analysisdomain.TrendResult) error {
	p := plot.New()
	p.Title.Text = "CPU Temperature Over Time"
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "CPU Temperature (°C)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "15:04:05"}
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(series))
	for i, sample := range series {
		points[i].X = float64(sample.Timestamp.Unix())
		points[i].Y = sample.Temperature
	}

	rawLine, rawPoints, err := plotter.NewLinePoints(points)
	if err != nil {
		return &domain.OutputError{Target: "chart", Err: err}
	}
	p.Add(rawLine, rawPoints)
	p.Legend.Add("CPU Temperature", rawLine, rawPoints)

	elapsed := series.ElapsedSeconds()

	if trend.Linear.Status == analysisdomain.FitOK {
		line, err := fitLine(points, elapsed, trend.Linear.Predict, color.RGBA{R: 0xcc, A: 0xff})
		if err != nil {
			return &domain.OutputError{Target: "chart", Err: err}
		}
		p.Add(line)
		p.Legend.Add("Linear trend", line)
	}

	if trend.Exponential.Status == analysisdomain.FitOK {
		line, err := fitLine(points, elapsed, trend.Exponential.Predict, color.RGBA{B: 0xcc, A: 0xff})
		if err != nil {
			return &domain.OutputError{Target: "chart", Err: err}
		}
		p.Add(line)
		p.Legend.Add("Exponential trend", line)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return &domain.OutputError{Target: "chart", Err: err}
	}

	if err := p.Save(10*vg.Inch, 5*vg.Inch, w.path); err != nil {
		return &domain.OutputError{Target: "chart", Err: err}
	}

	return nil
}

// fitLine evaluates the fitted model at each sample's elapsed offset and
// returns a dashed line over the same time axis as the raw points.
func fitLine(points plotter.XYs, elapsed []float64, predict func(float64) float64, c color.Color) (*plotter.Line, error) {
	fitted := make(plotter.XYs, len(points))
	for i := range points {
		fitted[i].X = points[i].X
		fitted[i].Y = predict(elapsed[i])
	}

	line, err := plotter.NewLine(fitted)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	line.LineStyle.Color = c
	return line, nil
}
