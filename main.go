package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"runtime/pprof"
	"sync"

	"github.com/filetug/foldertug/pkg/browser"
	"github.com/filetug/foldertug/pkg/config"
	"github.com/filetug/foldertug/pkg/dirsize"
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/files/osfile"
	"github.com/filetug/foldertug/pkg/logging"
	"github.com/filetug/foldertug/pkg/metrics"
	"github.com/filetug/foldertug/pkg/profiling"
	"github.com/filetug/foldertug/pkg/sorting"
	"github.com/filetug/foldertug/pkg/ui"
	"github.com/rivo/tview"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile = flag.String("memprofile", "", "write memory profile to `file`")
	pprofAddr  = flag.String("pprof", "", "start pprof and /metrics http server on `address` (e.g. localhost:6060)")
	configFile = flag.String("config", "", "read settings from `file` (default $XDG_CONFIG_HOME/foldertug/config.yaml)")
	initConfig = flag.Bool("init-config", false, "write the default settings to the config file and exit")
)

var httpListenAndServe = http.ListenAndServe
var osExit = os.Exit
var pprofStopCPUProfile = pprof.StopCPUProfile
var newStore = func() files.Store { return osfile.NewStore() }

func main() {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			pprofStopCPUProfile()
			osExit(1)
		}
	}()

	app, cleanup, err := newFolderTugApp()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "foldertug: %v\n", err)
		osExit(1)
		return
	}
	if app == nil {
		return
	}
	defer cleanup()
	run(app)
}

// newFolderTugApp returns a nil app when there is nothing to run.
func newFolderTugApp() (app *tview.Application, cleanup func(), err error) {
	flag.Parse()

	if *initConfig {
		path := *configFile
		if path == "" {
			path = config.GetDefaultConfigPath()
		}
		if err = config.WriteDefault(path, false); err != nil {
			return nil, nil, err
		}
		_, _ = fmt.Fprintf(os.Stdout, "wrote %s\n", path)
		return nil, nil, nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, nil, err
	}
	if err = logging.Init(loggingConfig(cfg.Logging)); err != nil {
		return nil, nil, err
	}

	addr := *pprofAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if addr != "" {
		startDebugServer(addr)
	}

	var stops []func()
	if *cpuProfile != "" {
		stops = append(stops, profiling.DoCPUProfiling(*cpuProfile))
	}
	if *memProfile != "" {
		stops = append(stops, profiling.DoMemProfiling(*memProfile))
	}

	app = newApp()
	b := browser.New(newStore(), browserOptions(cfg, ui.Executor(app))...)
	screen := setupApp(app, b)

	cleanup = func() {
		screen.Close()
		b.Shutdown()
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
		_ = logging.Sync()
	}
	return app, cleanup, nil
}

// loggingConfig keeps log lines off the terminal the UI draws on.
func loggingConfig(cfg config.LoggingConfig) logging.Config {
	out := cfg.Output
	if out == "stderr" || out == "stdout" {
		out = filepath.Join(os.TempDir(), "foldertug.log")
	}
	return logging.Config{Level: cfg.Level, Format: cfg.Format, OutputPath: out}
}

func browserOptions(cfg *config.Config, executor dirsize.Executor) []browser.Option {
	// Validated by config.Load.
	key, _ := sorting.ParseKey(cfg.Browser.SortKey)
	dir, _ := sorting.ParseDirection(cfg.Browser.Direction)
	return []browser.Option{
		browser.WithLogger(logging.L()),
		browser.WithSort(sorting.State{Key: key, Direction: dir}),
		browser.WithRoots(cfg.Browser.Roots...),
		browser.WithSizeOptions(
			dirsize.WithWorkers(cfg.Sizes.Workers),
			dirsize.WithQueueSize(cfg.Sizes.QueueSize),
			dirsize.WithJoinTimeout(cfg.Sizes.JoinTimeout),
			dirsize.WithLargeFolderThreshold(cfg.Sizes.LargeFolderThreshold),
			dirsize.WithFallbackMultiplier(cfg.Sizes.FallbackMultiplier),
			dirsize.WithExecutor(executor),
		),
	}
}

var registerMetrics sync.Once

func startDebugServer(addr string) {
	registerMetrics.Do(func() {
		http.Handle("/metrics", metrics.Handler())
	})
	logging.S().Infof("debug server listening on %s", addr)
	go func() {
		err := httpListenAndServe(addr, nil)
		if err != nil {
			logging.L().Error("pprof server error", logging.Err(err))
		}
	}()
}

var setupApp = ui.SetupApp

var newApp = func() *tview.Application {
	return tview.NewApplication()
}

type application interface{ Run() error }

var run = func(app application) {
	if err := app.Run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}
