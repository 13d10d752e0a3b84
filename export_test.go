package avd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func readCSV(t *testing.T, data string) [][]string {
	r := csv.NewReader(strings.NewReader(data))
	r.Comment = '#'
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestWriteEnvelopeCSV(t *testing.T) {
	conf := DefaultConfig()
	conf.Sweep.Samples = 50
	env, err := BuildEnvelope(conf, regionalJet(t).Aero(), field(1400))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteEnvelopeCSV(&buf, env); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "# bound landing (Raymer): W/S=2429.") {
		t.Fatal("vertical bounds missing from the header")
	}
	records := readCSV(t, buf.String())
	if len(records) != 51 || len(records[0]) != 12 {
		t.Fatalf("envelope is %dx%d", len(records), len(records[0]))
	}
	if records[0][0] != "WS" || records[0][1] != "takeoff" {
		t.Fatalf("invalid header %v", records[0])
	}
}

func TestExport(t *testing.T) {
	res, err := Run(DefaultConfig(), DefaultInputs())
	if err != nil {
		t.Fatal(err)
	}
	if (ExportConfig{}).IsUseless() == false {
		t.Fatal("an empty export config does nothing")
	}
	dir := t.TempDir()
	files, err := Export(ExportConfig{Filename: "bizjet", OutputDir: dir, AsCSV: true, AsJSON: true, Steps: 20}, res)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 4 {
		t.Fatalf("expected 4 files, got %v", files)
	}

	history, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, string(history))
	if len(records) != 12 || records[1][1] != "5000" {
		t.Fatalf("invalid history %v", records)
	}

	trace, _ := os.ReadFile(files[2])
	records = readCSV(t, string(trace))
	if len(records) != 1+1+2+20+2 || records[1][2] != "start" || records[len(records)-1][2] != "landing" {
		t.Fatalf("invalid trace with %d records", len(records))
	}

	data, _ := os.ReadFile(files[3])
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.ID != res.ID.String() || summary.Iterations != 10 || summary.Limiter != "landing (Raymer)" {
		t.Fatalf("invalid summary %+v", summary)
	}
	if !floats.EqualWithinAbs(summary.W0, res.Sizing.W0, 1e-9) || !floats.EqualWithinAbs(summary.Fractions["2-cruise"], 0.845128, 1e-6) {
		t.Fatalf("invalid summary weights %+v", summary)
	}
	if !floats.EqualWithinRel(summary.EmptyWeight+summary.FuelWeight+summary.FixedWeight, summary.W0, 1e-4) {
		t.Fatal("weight breakdown does not add up")
	}
}

func TestExportTimestamp(t *testing.T) {
	conf := ExportConfig{Filename: "bizjet", OutputDir: "out", Timestamp: true}
	at := time.Date(2026, 10, 19, 8, 5, 3, 0, time.UTC)
	if p := conf.path("history", "csv", at); p != filepath.Join("out", "bizjet-history-2026-10-19T08.05.03.csv") {
		t.Fatalf("invalid path %s", p)
	}
	res, err := Run(DefaultConfig(), DefaultInputs())
	if err != nil {
		t.Fatal(err)
	}
	conf.OutputDir = t.TempDir()
	conf.AsCSV, conf.AsJSON = true, true
	files, err := Export(conf, res)
	if err != nil {
		t.Fatal(err)
	}
	// Every file of one export carries the same timestamp.
	stamps := map[string]bool{}
	for i, kind := range []string{"history", "envelope", "trace", "summary"} {
		name := strings.TrimPrefix(filepath.Base(files[i]), "bizjet-"+kind)
		stamps[strings.TrimSuffix(name, filepath.Ext(name))] = true
	}
	if len(stamps) != 1 {
		t.Fatalf("files have different timestamps: %v", files)
	}
}
