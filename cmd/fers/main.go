// Command fers is a thin driver around the simulation kernel
// (internal/sim, internal/recv, internal/export): it loads a scenario,
// runs the scheduler and window assembler, and writes whichever output
// formats are enabled.
//
// The real scenario format (XML/JSON scripts per spec.md §6) and the KML
// visualiser are external tooling, out of this kernel's scope; the
// "-scenario" flag here loads the minimal JSON demo format described in
// scenario.go, intended for exercising the kernel end-to-end, not as a
// drop-in replacement for the production parser.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/banshee-data/fers/internal/export"
	"github.com/banshee-data/fers/internal/logx"
	"github.com/banshee-data/fers/internal/recv"
	"github.com/banshee-data/fers/internal/sim"
)

var (
	scenarioFile = flag.String("scenario", "", "path to a demo JSON scenario file (see scenario.go; not the production parser)")
	noValidate   = flag.Bool("no-validate", false, "skip scenario validation before running (accepted for CLI-surface parity; always validated here)")
	kml          = flag.Bool("kml", false, "accepted for CLI-surface parity; the KML visualiser is external tooling and is not built by this kernel")
	logLevel     = flag.String("log-level", "info", "accepted for CLI-surface parity; this kernel logs at a single verbosity")
	logFile      = flag.String("log-file", "", "write logs to this file instead of stderr")
	outDir       = flag.String("out", ".", "output directory for exported files")
	threads      = flag.Int("n", 0, "worker thread count override (0 = keep the scenario's render_threads)")
)

func main() {
	flag.Parse()
	_ = noValidate
	_ = kml

	if err := configureLogging(*logFile, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *scenarioFile == "" {
		fmt.Fprintln(os.Stderr, "fers: -scenario is required")
		os.Exit(1)
	}

	if err := run(*scenarioFile, *outDir, *threads); err != nil {
		logx.Logf("fers: fatal: %v", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func configureLogging(path, level string) error {
	_ = level // accepted for CLI-surface parity; this kernel logs at one verbosity
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file %q: %w", path, err)
	}
	l := &fileLogger{f: f}
	logx.SetLogger(l.logf)
	return nil
}

type fileLogger struct{ f *os.File }

func (l *fileLogger) logf(format string, v ...interface{}) {
	fmt.Fprintf(l.f, format+"\n", v...)
}

func run(scenarioFile, outDir string, threadOverride int) error {
	w, params, err := loadScenario(scenarioFile)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	if threadOverride > 0 {
		params.RenderThreads = threadOverride
	}
	if params.RenderThreads > runtime.NumCPU() {
		logx.Logf("fers: render_threads %d exceeds CPU count %d, clamping", params.RenderThreads, runtime.NumCPU())
		params.RenderThreads = runtime.NumCPU()
	}

	if err := w.Prepare(); err != nil {
		return fmt.Errorf("preparing world: %w", err)
	}

	scheduler := sim.New(w, params)
	if err := scheduler.Run(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	assembler := recv.New(params)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", outDir, err)
	}

	for _, rx := range w.Receivers {
		windows, err := assembler.AssembleReceiver(rx)
		if err != nil {
			logx.Logf("fers: receiver %q: assembly failed: %v", rx.Name, err)
			continue
		}
		if err := export.Receiver(outDir, rx, windows, params.Export); err != nil {
			logx.Logf("fers: receiver %q: export failed: %v", rx.Name, err)
		}
	}
	return nil
}
