package config

import "flag"

// Flags are the command line overrides shared by the c2probe commands.
type Flags struct {
	Config  *string
	Debug   *bool
	LogFile *string
	Workers *int
	Steps   *int
	Format  *string
	Output  *string
}

// RegisterFlags binds the override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:  fs.String("config", "", "Path to config file"),
		Debug:   fs.Bool("debug", false, "Enable debug logging"),
		LogFile: fs.String("log", "", "Write logs to this file as well"),
		Workers: fs.Int("workers", 0, "Number of queries evaluated at once"),
		Steps:   fs.Int("steps", 0, "Default number of sweep steps"),
		Format:  fs.String("format", "", "Report format: text, yaml or msgpack"),
		Output:  fs.String("o", "", "Write the report to this file"),
	}
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if *f.LogFile != "" {
		cfg.Logging.LogFile = *f.LogFile
	}
	if *f.Workers > 0 {
		cfg.Runner.Workers = *f.Workers
	}
	if *f.Steps > 0 {
		cfg.Runner.SweepSteps = *f.Steps
	}
	if *f.Format != "" {
		cfg.Output.Format = *f.Format
	}
	if *f.Output != "" {
		cfg.Output.Path = *f.Output
	}
}
