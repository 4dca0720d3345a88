// Command pq-run executes a circuit description on a registered device
// and prints the resulting expectation values.
//
// Usage:
//
//	pq-run [flags] <circuit.yaml>
//
// Examples:
//
//	# Run on the local state-vector simulator
//	pq-run rotation.yaml
//
//	# Estimate with 1024 samples instead of exact values
//	pq-run -shots 1024 rotation.yaml
//
//	# Run on the hosted hardware service (credentials from config)
//	pq-run -device projectq.ibm -config ~/.config/projectq-go/config.yaml rotation.yaml
//
//	# Record an execution log for later analysis with pq-log
//	pq-run -log run.qlog rotation.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/projectq-plugins/projectq-go/pkg/circuit"
	"github.com/projectq-plugins/projectq-go/pkg/config"
	"github.com/projectq-plugins/projectq-go/pkg/device"
	"github.com/projectq-plugins/projectq-go/pkg/log"
	"github.com/projectq-plugins/projectq-go/pkg/version"

	// Register the built-in devices.
	_ "github.com/projectq-plugins/projectq-go/pkg/classical"
	_ "github.com/projectq-plugins/projectq-go/pkg/ibm"
	_ "github.com/projectq-plugins/projectq-go/pkg/simulator"
)

func main() {
	var (
		configPath  = flag.String("config", "", "configuration file (default: $PQ_CONFIG, then the user config dir)")
		deviceName  = flag.String("device", "projectq.simulator", "device to run on")
		shots       = flag.Int("shots", -1, "samples per expectation value (0 = exact, -1 = device default)")
		seed        = flag.Int64("seed", 0, "sampling seed (0 = time-based)")
		logPath     = flag.String("log", "", "write a CBOR execution log to this file")
		verbose     = flag.Bool("v", false, "log device activity to stderr")
		showVersion = flag.Bool("version", false, "print the plugin version and exit")
		apiVersion  = flag.String("api", "", "device-API version of the hosting framework; refuse to run if incompatible")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("projectq-go %s (device API %s)\n", version.Version, version.APIRequires)
		return
	}

	if *apiVersion != "" {
		if err := checkAPI(*apiVersion); err != nil {
			fmt.Fprintf(os.Stderr, "pq-run: %v\n", err)
			os.Exit(1)
		}
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	if err := run(*configPath, *deviceName, *shots, *seed, *logPath, *verbose, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "pq-run: %v\n", err)
		os.Exit(1)
	}
}

// checkAPI verifies that a host framework at the given device-API
// version can drive this plugin.
func checkAPI(apiVersion string) error {
	ok, err := version.Compatible(apiVersion)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("device API %s is incompatible with this plugin (requires %s in the same major series)",
			apiVersion, version.APIRequires)
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `pq-run - execute a circuit on a device

Usage:
  pq-run [flags] <circuit.yaml>

Devices:
  %v

Flags:
`, device.Names())
	flag.PrintDefaults()
}

func run(configPath, deviceName string, shots int, seed int64, logPath string, verbose bool, circuitPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	c, err := circuit.LoadFile(circuitPath)
	if err != nil {
		return err
	}

	logger, cleanup, err := buildLogger(cfg, logPath, verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := cfg.DeviceOptions()
	opts = append(opts, device.WithWires(c.Wires), device.WithLogger(logger))
	if shots >= 0 {
		opts = append(opts, device.WithShots(shots))
	}
	if seed != 0 {
		opts = append(opts, device.WithSeed(seed))
	}

	dev, err := device.New(deviceName, opts...)
	if err != nil {
		return err
	}
	defer dev.Close()

	values, err := circuit.Run(context.Background(), dev, c)
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		name = circuitPath
	}
	fmt.Printf("%s on %s (%d wires", name, dev.ShortName(), dev.Wires())
	if dev.Shots() > 0 {
		fmt.Printf(", %d shots", dev.Shots())
	}
	fmt.Println("):")
	for i, m := range c.Measurements {
		fmt.Printf("  <%s> wire %v = %+.6f\n", m.Observable, m.Wires, values[i])
	}
	return nil
}

// buildLogger assembles the execution logger from flags and config.
func buildLogger(cfg *config.Config, logPath string, verbose bool) (log.Logger, func(), error) {
	var loggers []log.Logger
	cleanup := func() {}

	if logPath == "" {
		logPath = cfg.Log.File
	}
	if logPath != "" {
		fl, err := log.NewFileLogger(logPath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("opening execution log: %w", err)
		}
		loggers = append(loggers, fl)
		cleanup = func() { _ = fl.Close() }
	}
	if verbose || cfg.Log.Verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(handler)))
	}

	switch len(loggers) {
	case 0:
		return log.NoopLogger{}, cleanup, nil
	case 1:
		return loggers[0], cleanup, nil
	default:
		return log.NewMultiLogger(loggers...), cleanup, nil
	}
}
