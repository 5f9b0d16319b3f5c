package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/servalproject/dataman/config"
	"github.com/servalproject/dataman/internal"
	"github.com/servalproject/dataman/style"
	"github.com/servalproject/dataman/task"
)

const (
	appName    = "Serval Maps Data Manipulator"
	appVersion = "1.0"
	moreInfo   = "http://bytechxplorer.com/development/serval-project/#servalmaps"
	license    = "http://www.gnu.org/licenses/gpl-3.0.txt"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("binloc2kml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "path to the input file")
	output := fs.String("output", "", "path to the output file")
	taskName := fs.String("task", "", "manipulation task to undertake (overrides config)")
	styleDef := fs.String("style", "", "style definition information, e.g. colour=80FF0050,width=3")
	verbose := fs.Bool("verbose", false, "use verbose output")
	configPath := fs.String("config", "", "path to config.yml")
	listTasks := fs.Bool("tasks", false, "list the known task types and exit")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *listTasks {
		fmt.Fprint(stdout, taskList())
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if *verbose {
		cfg.Logging.Verbose = true
	}
	logger := internal.InitLogging(stdout, cfg.Logging.Verbose, cfg.Logging.Format)

	opts, err := buildOptions(cfg, *input, *output, *taskName, *styleDef)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return exitUsage
	}
	opts.Logger = logger

	logger.Debug(appName, "version", appVersion, "more_info", moreInfo, "license", license)
	logger.Debug("undertaking the task", "task", opts.Type.String(), "description", opts.Type.Description(),
		"input", absPath(opts.InputPath), "output", absPath(opts.OutputPath))

	t, err := task.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if err := t.Run(); err != nil {
		fmt.Fprintf(stderr, "Error: Task execution failed\n%v\n", err)
		return exitFailed
	}
	return exitOK
}

func buildOptions(cfg config.AppConfig, input, output, taskName, styleDef string) (task.Options, error) {
	if input == "" {
		return task.Options{}, fmt.Errorf("%w: the path to the input file is required", errUsage)
	}
	if output == "" {
		return task.Options{}, fmt.Errorf("%w: the path to the output file is required", errUsage)
	}

	if taskName == "" {
		taskName = cfg.Conversion.Task
	}
	typ, err := task.ParseType(taskName)
	if err != nil {
		return task.Options{}, fmt.Errorf("%w\nKnown task types are:%s", err, taskList())
	}

	if styleDef == "" {
		styleDef = cfg.Conversion.Style
	}
	ls, err := style.Parse(styleDef)
	if err != nil {
		return task.Options{}, fmt.Errorf("unable to parse the style definition: %w", err)
	}

	return task.Options{InputPath: input, OutputPath: output, Type: typ, Style: ls}, nil
}

func taskList() string {
	list := "\n"
	for _, t := range task.Types() {
		list += "  - " + t.String() + ": " + t.Description() + "\n"
	}
	return list
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
