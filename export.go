package avd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ExportConfig configures the exporting of a session.
type ExportConfig struct {
	Filename  string
	OutputDir string
	AsCSV     bool // history, envelope and weight trace
	AsJSON    bool // summary
	Timestamp bool
	Steps     int // integration steps per cruise or loiter segment of the weight trace
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.AsJSON
}

func (c ExportConfig) path(kind, ext string, t time.Time) string {
	name := fmt.Sprintf("%s-%s", c.Filename, kind)
	if c.Timestamp {
		name += fmt.Sprintf("-%d-%02d-%02dT%02d.%02d.%02d", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return filepath.Join(c.OutputDir, name+"."+ext)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteHistoryCSV writes the gross weight at every iteration.
func WriteHistoryCSV(w io.Writer, r SizingResult) error {
	fmt.Fprintf(w, "# Creation date (UTC): %s\n# WfW0=%f WeW0=%f\n", time.Now().UTC(), r.WfW0, r.WeW0)
	cw := csv.NewWriter(w)
	cw.Write([]string{"iteration", "W0"})
	for i, W0 := range r.History {
		cw.Write([]string{strconv.Itoa(i), ftoa(W0)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteEnvelopeCSV writes one row per wing loading and one column per curve.
// The vertical bounds are listed in the header comments.
func WriteEnvelopeCSV(w io.Writer, env *Envelope) error {
	fmt.Fprintf(w, "# Creation date (UTC): %s\n", time.Now().UTC())
	for _, b := range env.Bounds {
		fmt.Fprintf(w, "# bound %s: W/S=%f Pa\n", b.Name, b.WS)
	}
	all := env.All()
	hdr := make([]string, len(all)+1)
	hdr[0] = "WS"
	for i, c := range all {
		hdr[i+1] = c.Name
	}
	cw := csv.NewWriter(w)
	cw.Write(hdr)
	row := make([]string, len(hdr))
	for j, ws := range env.Sweep {
		row[0] = ftoa(ws)
		for i, c := range all {
			row[i+1] = ftoa(c.TW[j])
		}
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

// WriteTraceCSV writes the mass of the aircraft along the mission.
func WriteTraceCSV(w io.Writer, points []TracePoint) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"time", "weight", "segment"})
	for _, p := range points {
		seg := "start"
		if p.Kind != 0 {
			seg = p.Kind.String()
		}
		cw.Write([]string{ftoa(p.Time), ftoa(p.Weight), seg})
	}
	cw.Flush()
	return cw.Error()
}

// Summary is the JSON export of a session.
type Summary struct {
	ID          string             `json:"id"`
	Profile     string             `json:"profile"`
	W0          float64            `json:"w0"`
	EmptyWeight float64            `json:"emptyWeight"`
	FuelWeight  float64            `json:"fuelWeight"`
	FixedWeight float64            `json:"fixedWeight"`
	WfW0        float64            `json:"wfw0"`
	WeW0        float64            `json:"wew0"`
	Iterations  int                `json:"iterations"`
	Fractions   map[string]float64 `json:"fractions"`
	WS          float64            `json:"ws"`
	TW          float64            `json:"tw"`
	MinimumWS   float64            `json:"minimumWS"`
	LandingWS   float64            `json:"landingWS"`
	Limiter     string             `json:"limiter"`
	WingArea    float64            `json:"wingArea"`
	Thrust      float64            `json:"thrust"`
}

// NewSummary returns the summary of a session.
func NewSummary(r Result) Summary {
	fractions := make(map[string]float64, len(r.Sizing.Breakdown))
	for i, f := range r.Sizing.Breakdown {
		fractions[fmt.Sprintf("%d-%s", i, f.Kind)] = f.Fraction
	}
	return Summary{
		ID:          r.ID.String(),
		Profile:     r.Inputs.Profile.String(),
		W0:          r.Sizing.W0,
		EmptyWeight: r.Sizing.EmptyWeight(),
		FuelWeight:  r.Sizing.FuelWeight(),
		FixedWeight: r.FixedWeight(),
		WfW0:        r.Sizing.WfW0,
		WeW0:        r.Sizing.WeW0,
		Iterations:  r.Sizing.Iterations(),
		Fractions:   fractions,
		WS:          r.Design.Point.WS,
		TW:          r.Design.Point.TW,
		MinimumWS:   r.Design.Minimum.WS,
		LandingWS:   r.Design.LandingBound.WS,
		Limiter:     r.Design.Limiter,
		WingArea:    r.WingArea(),
		Thrust:      r.Thrust(),
	}
}

// WriteSummaryJSON writes the indented summary of a session.
func WriteSummaryJSON(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewSummary(r))
}

// Export writes the session to the output directory and returns the created files.
func Export(conf ExportConfig, r Result) ([]string, error) {
	var files []string
	now := time.Now()
	write := func(kind, ext string, fn func(io.Writer) error) (err error) {
		path := conf.path(kind, ext, now)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("%s: %w", path, cerr)
			}
		}()
		if err := fn(f); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		files = append(files, path)
		return nil
	}
	if conf.AsCSV {
		steps := conf.Steps
		if steps < 1 {
			steps = 100
		}
		trace, err := TraceProfile(r.Inputs.Profile, r.Sizing.W0, r.State.SFC, r.State.LD, steps)
		if err != nil {
			return files, err
		}
		if err := write("history", "csv", func(w io.Writer) error { return WriteHistoryCSV(w, r.Sizing) }); err != nil {
			return files, err
		}
		if err := write("envelope", "csv", func(w io.Writer) error { return WriteEnvelopeCSV(w, r.Envelope) }); err != nil {
			return files, err
		}
		if err := write("trace", "csv", func(w io.Writer) error { return WriteTraceCSV(w, trace) }); err != nil {
			return files, err
		}
	}
	if conf.AsJSON {
		if err := write("summary", "json", func(w io.Writer) error { return WriteSummaryJSON(w, r) }); err != nil {
			return files, err
		}
	}
	return files, nil
}
