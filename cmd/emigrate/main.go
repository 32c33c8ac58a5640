// Command emigrate is a thin CLI front end over migrate/engine: it loads
// a configuration file, resolves an explicit root-dir, runs the
// migration pipeline, and reports the outcome. Flag parsing beyond this
// shim is explicitly out of scope (spec.md §1 Non-goals).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/viant/afs"

	"github.com/urfave/cli/v2"

	"github.com/viant/emberdata-migrate/internal/rootdetect"
	"github.com/viant/emberdata-migrate/migrate/config"
	"github.com/viant/emberdata-migrate/migrate/core"
	"github.com/viant/emberdata-migrate/migrate/engine"
)

func main() {
	app := &cli.App{
		Name:  "emigrate",
		Usage: "rewrite legacy ember-data models and mixins into schema artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file path (YAML or JSON)", Required: true},
			&cli.BoolFlag{Name: "dry-run", Usage: "Suppress all writes"},
			&cli.BoolFlag{Name: "verbose", Usage: "Per-file progress logging"},
			&cli.BoolFlag{Name: "debug", Usage: "Log resolved schedule and resolver decisions"},
			&cli.BoolFlag{Name: "models-only", Usage: "Suppress mixin emission"},
			&cli.BoolFlag{Name: "mixins-only", Usage: "Suppress model emission"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "emigrate:", err)
		os.Exit(exitCodeFor(err))
	}
}

func run(c *cli.Context) error {
	configPath := c.String("config")

	rootDir, err := rootdetect.Detect(".")
	if err != nil {
		return fmt.Errorf("detect project root: %w", err)
	}

	raw, err := afs.New().DownloadWithURL(context.Background(), configPath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", configPath, err)
	}

	cfg, err := config.Load(configPath, raw)
	if err != nil {
		return err
	}
	if cfg.InputDir == "" {
		cfg.InputDir = rootDir
	}
	if c.Bool("debug") {
		if moduleName, ok := rootdetect.ModuleName(rootDir); ok {
			fmt.Fprintf(os.Stderr, "root-dir %s (go module %s)\n", rootDir, moduleName)
		} else {
			fmt.Fprintf(os.Stderr, "root-dir %s\n", rootDir)
		}
	}

	if c.Bool("dry-run") {
		cfg.DryRun = true
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.Bool("models-only") {
		cfg.ModelsOnly = true
	}
	if c.Bool("mixins-only") {
		cfg.MixinsOnly = true
	}

	eng := engine.New(cfg)
	report, err := eng.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("indexed %d files, %d parse failures\n", report.FilesIndexed, report.ParseFailures)
	fmt.Printf("models classified: %d, mixins classified: %d, mixins connected: %d\n",
		report.ModelsClassified, report.MixinsClassified, report.MixinsConnected)
	fmt.Printf("cycles broken: %d, artifacts written: %d\n", report.CyclesBroken, report.ArtifactsWritten)
	for _, w := range report.Warnings {
		if cfg.Verbose || cfg.Debug {
			fmt.Fprintln(os.Stderr, w)
		}
	}
	return nil
}

// exitCodeFor maps an error that stopped the run to an exit status: 2 for
// a configuration error (also when wrapped), 1 for any other error.
// Per-file warnings are collected in the report and never reach here.
func exitCodeFor(err error) int {
	var cfgErr *core.ConfigError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}
