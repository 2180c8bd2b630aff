package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"blox/config"
	"blox/misc"
	"blox/state"
	"blox/tree"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	if err := env.LoadCatalog(); err != nil {
		return ctx, fmt.Errorf("unable to prepare catalog: %w", err)
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Errors from subcommands are regular errors, cli.Exit() is not used.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

const documentHelp = `
DOCUMENT:
    YAML file with page nodes: "nodes: [{id: ..., tag: ..., parent: ..., children: [...]}, ...]"
`

const outputHelp = `
Resulting document is written to file named by --out, if absent - STDOUT.
`

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	outFlag := &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write resulting document to `FILE`"}
	contextFlag := &cli.StringFlag{Name: "context", Aliases: []string{"x"}, Usage: "style context as `DEVICE/ORIENTATION/PSEUDO`, missing parts are taken from configuration"}

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "page block tree and style engine",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "output debug messages to console"},
		},
		Commands: []*cli.Command{
			{
				Name:               "check",
				Usage:              "Verifies catalog consistency and structural invariants of document tree",
				OnUsageError:       usageErrorHandler,
				Action:             runCheck,
				ArgsUsage:          "[DOCUMENT]",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
			},
			{
				Name:               "dump",
				Usage:              "Outputs document tree in human readable form",
				OnUsageError:       usageErrorHandler,
				Action:             runDump,
				ArgsUsage:          "DOCUMENT [ID]",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
			},
			{
				Name:               "resolve",
				Usage:              "Resolves effective style values of a node",
				OnUsageError:       usageErrorHandler,
				Action:             runResolve,
				Flags:              []cli.Flag{contextFlag, &cli.StringSliceFlag{Name: "property", Aliases: []string{"p"}, Usage: "resolve only `KEY` (may be repeated)"}},
				ArgsUsage:          "DOCUMENT ID",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
			},
			{
				Name:         "validate",
				Usage:        "Validates style value against property grammar",
				OnUsageError: usageErrorHandler,
				Action:       runValidate,
				ArgsUsage:    "KEY VALUE",
			},
			{
				Name:         "options",
				Usage:        "Lists candidate values for every slot of a style value",
				OnUsageError: usageErrorHandler,
				Action:       runOptions,
				Flags:        []cli.Flag{&cli.StringFlag{Name: "syntax", Usage: "use grammar `SYNTAX` instead of property one"}},
				ArgsUsage:    "KEY [VALUE]",
			},
			{
				Name:               "create",
				Usage:              "Creates node from block definition",
				OnUsageError:       usageErrorHandler,
				Action:             runCreate,
				Flags:              []cli.Flag{outFlag, &cli.StringFlag{Name: "tag", Usage: "render block with `TAG`"}, &cli.IntFlag{Name: "index", Value: -1, Usage: "insert at `POSITION` among parent children, appends when negative"}},
				ArgsUsage:          "DOCUMENT BLOCK PARENT",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp + outputHelp,
			},
			{
				Name:               "delete",
				Usage:              "Deletes node with its subtree",
				OnUsageError:       usageErrorHandler,
				Action:             runDelete,
				Flags:              []cli.Flag{outFlag},
				ArgsUsage:          "DOCUMENT ID",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp + outputHelp,
			},
			{
				Name:               "duplicate",
				Usage:              "Duplicates node with its subtree right after the original",
				OnUsageError:       usageErrorHandler,
				Action:             runDuplicate,
				Flags:              []cli.Flag{outFlag},
				ArgsUsage:          "DOCUMENT ID",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp + outputHelp,
			},
			{
				Name:               "move",
				Usage:              "Moves node relative to target (" + strings.Join(tree.ModeNames(), ", ") + ")",
				OnUsageError:       usageErrorHandler,
				Action:             runMove,
				Flags:              []cli.Flag{outFlag},
				ArgsUsage:          "DOCUMENT SOURCE MODE TARGET",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp + outputHelp,
			},
			{
				Name:               "set",
				Usage:              "Sets style value of a node, empty VALUE clears it",
				OnUsageError:       usageErrorHandler,
				Action:             runSet,
				Flags:              []cli.Flag{outFlag, contextFlag},
				ArgsUsage:          "DOCUMENT ID KEY VALUE",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp + outputHelp,
			},
			{
				Name:               "reset",
				Usage:              "Removes style value of a node at exact context",
				OnUsageError:       usageErrorHandler,
				Action:             runReset,
				Flags:              []cli.Flag{outFlag, contextFlag},
				ArgsUsage:          "DOCUMENT ID KEY",
				CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp + outputHelp,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
