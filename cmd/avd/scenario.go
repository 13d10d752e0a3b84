package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ChristopherRabotin/avd"
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/viper"
)

// Scenario is a sizing scenario read from a TOML file.
type Scenario struct {
	Config avd.Config
	Inputs avd.Inputs
	Export avd.ExportConfig
}

// readScenario reads the scenario file. An empty path returns the default scenario.
func readScenario(path string, debug bool) (Scenario, error) {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	if debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	sc := Scenario{Config: avd.DefaultConfig(), Inputs: avd.DefaultInputs()}
	sc.Export = avd.ExportConfig{Filename: "avd", OutputDir: "."}
	if path == "" {
		log.Println("[conf] no scenario provided, using the default business jet")
		sc.Config.Logger = logger
		return sc, nil
	}
	conf, err := avd.LoadConfig(path)
	if err != nil {
		return sc, err
	}
	conf.Logger = logger
	sc.Config = conf

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return sc, err
	}
	if v.IsSet("design") {
		if err := v.UnmarshalKey("design", &sc.Inputs); err != nil {
			return sc, fmt.Errorf("design: %w", err)
		}
	}
	if v.IsSet("design.max_stall_speed_kts") {
		sc.Inputs.MaxStallSpeed = avd.Knots(v.GetFloat64("design.max_stall_speed_kts"))
	}
	if v.IsSet("design.profile") {
		profilePath := v.GetString("design.profile")
		if !filepath.IsAbs(profilePath) {
			profilePath = filepath.Join(filepath.Dir(path), profilePath)
		}
		f, err := os.Open(profilePath)
		if err != nil {
			return sc, err
		}
		defer f.Close()
		if sc.Inputs.Profile, err = avd.ParseProfile(f); err != nil {
			return sc, fmt.Errorf("%s: %w", profilePath, err)
		}
		log.Printf("[conf] mission profile: %s\n", sc.Inputs.Profile)
	}
	if v.IsSet("export") {
		sc.Export.AsCSV = v.GetBool("export.csv")
		sc.Export.AsJSON = v.GetBool("export.json")
		sc.Export.Timestamp = v.GetBool("export.timestamp")
		sc.Export.Steps = v.GetInt("export.steps")
		if v.IsSet("export.filename") {
			sc.Export.Filename = v.GetString("export.filename")
		}
		if v.IsSet("export.directory") {
			sc.Export.OutputDir = v.GetString("export.directory")
		}
	}
	log.Printf("[conf] %s: %d passengers, %d crew, AR=%.2f, field=%.0fm\n", path, sc.Inputs.Passengers, sc.Inputs.Crew, sc.Inputs.AspectRatio, sc.Inputs.FieldLength)
	return sc, nil
}
