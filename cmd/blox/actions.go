package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"blox/catalog"
	"blox/command"
	"blox/config"
	"blox/state"
	"blox/style"
	"blox/tree"
	"blox/utils/debug"
)

var errArgs = errors.New("malformed command line")

func expectArgs(cmd *cli.Command, lo, hi int) error {
	if n := cmd.NArg(); n < lo || n > hi {
		return fmt.Errorf("%w: %s expects %s", errArgs, cmd.Name, cmd.ArgsUsage)
	}
	return nil
}

// loadDocument reads document named by first argument into environment store.
func loadDocument(env *state.LocalEnv, cmd *cli.Command) error {
	return env.LoadDocument(cmd.Args().First())
}

func styleContext(env *state.LocalEnv, cmd *cli.Command) (style.Context, error) {
	return style.ParseContext(cmd.String("context"), env.Context())
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if err := expectArgs(cmd, 0, 1); err != nil {
		return err
	}

	err := env.Catalog.Check()
	if cmd.NArg() == 1 {
		if er := loadDocument(env, cmd); er != nil {
			return er
		}
		err = multierr.Combine(err, tree.Verify(env.Store), checkDefinitions(env), checkStyles(env))
	}
	if err != nil {
		for _, e := range multierr.Errors(err) {
			env.Log.Warn("Check failed", zap.Error(e))
		}
		return fmt.Errorf("check found %d problem(s)", len(multierr.Errors(err)))
	}
	env.Log.Info("Check passed", zap.Int("nodes", len(env.Store.Nodes())))
	return nil
}

// checkDefinitions reports nodes referencing element or block definitions
// unknown to the catalog.
func checkDefinitions(env *state.LocalEnv) (err error) {
	nodes := env.Store.Nodes()
	for _, id := range debug.SortedKeys(nodes) {
		n := nodes[id]
		if _, ok := env.Catalog.Element(n.Tag); !ok {
			err = multierr.Append(err, fmt.Errorf("node %q tag %q: %w", id, n.Tag, catalog.ErrUnknownKey))
		}
		if n.DefinitionKey == "" {
			continue
		}
		def, ok := env.Catalog.Block(n.DefinitionKey)
		switch {
		case !ok:
			err = multierr.Append(err, fmt.Errorf("node %q block %q: %w", id, n.DefinitionKey, catalog.ErrUnknownKey))
		case !def.AllowsTag(n.Tag):
			err = multierr.Append(err, fmt.Errorf("node %q: block %q does not allow tag %q", id, n.DefinitionKey, n.Tag))
		}
	}
	return err
}

// checkStyles validates every stored style value against property grammar.
func checkStyles(env *state.LocalEnv) (err error) {
	styles := env.Styles()
	dims := env.Cfg.Styles.Dimensions()
	nodes := env.Store.Nodes()
	for _, id := range debug.SortedKeys(nodes) {
		st := nodes[id].Styles
		for _, d := range debug.SortedKeys(st) {
			for _, o := range debug.SortedKeys(st[d]) {
				for _, p := range debug.SortedKeys(st[d][o]) {
					sctx := style.Context{Device: d, Orientation: o, Pseudo: p}
					if v := dims.Validate(sctx); !v.Valid {
						err = multierr.Append(err, fmt.Errorf("node %q: %w", id, v.Err()))
						continue
					}
					props := st[d][o][p]
					for _, key := range debug.SortedKeys(props) {
						if v := styles.Validate(key, props[key]); !v.Valid {
							err = multierr.Append(err, fmt.Errorf("node %q at %s: %w", id, sctx, v.Err()))
						}
					}
				}
			}
		}
	}
	return err
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if err := expectArgs(cmd, 1, 2); err != nil {
		return err
	}
	if err := loadDocument(env, cmd); err != nil {
		return err
	}

	ids := env.Store.Nodes().Roots()
	if id := cmd.Args().Get(1); id != "" {
		if _, ok := env.Store.Node(id); !ok {
			return fmt.Errorf("node %q: %w", id, tree.ErrNotFound)
		}
		ids = []string{id}
	}
	for _, id := range ids {
		fmt.Fprint(os.Stdout, tree.Dump(env.Store, id))
	}
	return nil
}

func runResolve(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if err := expectArgs(cmd, 2, 2); err != nil {
		return err
	}
	if err := loadDocument(env, cmd); err != nil {
		return err
	}
	sctx, err := styleContext(env, cmd)
	if err != nil {
		return err
	}
	id := cmd.Args().Get(1)

	values := make(map[string]string)
	if keys := cmd.StringSlice("property"); len(keys) > 0 {
		c := env.Commands()
		for _, key := range keys {
			r := c.GetStyle(env.Store, id, key, sctx)
			if !r.Ok() {
				return fmt.Errorf("unable to resolve %q: %s", key, r.Error())
			}
			values[key] = r.Value
		}
	} else {
		n, ok := env.Store.Node(id)
		if !ok {
			return fmt.Errorf("node %q: %w", id, tree.ErrNotFound)
		}
		values = env.Styles().Computed(n.Styles, sctx)
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "%s at %s", id, sctx)
	for _, key := range debug.SortedKeys(values) {
		tw.Field(1, key, values[key])
	}
	fmt.Fprint(os.Stdout, tw.String())
	return nil
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if err := expectArgs(cmd, 2, 2); err != nil {
		return err
	}
	v := env.Styles().Validate(cmd.Args().Get(0), cmd.Args().Get(1))
	if !v.Valid {
		return v.Err()
	}
	fmt.Fprintln(os.Stdout, v.Value)
	return nil
}

func runOptions(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if err := expectArgs(cmd, 1, 2); err != nil {
		return err
	}
	key, raw := cmd.Args().Get(0), cmd.Args().Get(1)

	syntax := cmd.String("syntax")
	if syntax == "" {
		def, ok := env.Catalog.Style(key)
		if !ok {
			return fmt.Errorf("style %q: %w", key, catalog.ErrUnknownKey)
		}
		syntax = def.Syntax
	}

	tw := debug.NewTreeWriter()
	tw.Line(0, "%s: %s", key, env.Grammar().Expand(syntax))
	for slot, opts := range env.Grammar().OptionTable(raw, syntax) {
		tw.Line(1, "slot %d", slot)
		for _, o := range opts {
			mark := ""
			if o.Current {
				mark = " *"
			}
			tw.Line(2, "%s (%s)%s", o.Value, o.Token, mark)
		}
	}
	fmt.Fprint(os.Stdout, tw.String())
	return nil
}

// commit applies successful command result to the store, failures are
// returned as errors.
func commit(env *state.LocalEnv, op string, r command.Result) error {
	switch r.Status {
	case command.StatusOk:
		env.Store.Apply(r.Patch)
		env.Log.Debug("Command applied", zap.String("op", op), zap.Strings("changed", r.Patch.IDs()))
		return nil
	case command.StatusNoOp:
		env.Log.Info("Nothing to do", zap.String("op", op))
		return nil
	default:
		return fmt.Errorf("%s: %s", op, r.Error())
	}
}

// saveDocument writes store content to --out file or STDOUT.
func saveDocument(env *state.LocalEnv, cmd *cli.Command) (err error) {
	var out io.Writer = os.Stdout
	if fname := cmd.String("out"); len(fname) > 0 {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	}
	if err := tree.Verify(env.Store); err != nil {
		return fmt.Errorf("refusing to save inconsistent document: %w", err)
	}
	return env.Store.Save(out)
}

// mutate loads document, runs single command against it and saves the result.
func mutate(ctx context.Context, cmd *cli.Command, args int, run func(env *state.LocalEnv, c *command.Commands, args cli.Args) error) error {
	env := state.EnvFromContext(ctx)
	if err := expectArgs(cmd, args, args); err != nil {
		return err
	}
	if err := loadDocument(env, cmd); err != nil {
		return err
	}
	if err := run(env, env.Commands(), cmd.Args()); err != nil {
		return err
	}
	return saveDocument(env, cmd)
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	return mutate(ctx, cmd, 3, func(env *state.LocalEnv, c *command.Commands, args cli.Args) error {
		r := c.CreateNode(env.Store, args.Get(1), args.Get(2), cmd.String("tag"), int(cmd.Int("index")), nil)
		if err := commit(env, "create", r); err != nil {
			return err
		}
		env.Log.Info("Node created", zap.String("id", r.Node))
		return nil
	})
}

func runDelete(ctx context.Context, cmd *cli.Command) error {
	return mutate(ctx, cmd, 2, func(env *state.LocalEnv, c *command.Commands, args cli.Args) error {
		r := c.DeleteNode(env.Store, args.Get(1))
		if err := commit(env, "delete", r); err != nil {
			return err
		}
		// nothing to animate here, purge right away
		return commit(env, "finalize-delete", c.FinalizeDelete(env.Store, *r.Removal, ""))
	})
}

func runDuplicate(ctx context.Context, cmd *cli.Command) error {
	return mutate(ctx, cmd, 2, func(env *state.LocalEnv, c *command.Commands, args cli.Args) error {
		r := c.DuplicateNode(env.Store, args.Get(1))
		if err := commit(env, "duplicate", r); err != nil {
			return err
		}
		env.Log.Info("Node duplicated", zap.String("id", r.Node))
		return nil
	})
}

func runMove(ctx context.Context, cmd *cli.Command) error {
	return mutate(ctx, cmd, 4, func(env *state.LocalEnv, c *command.Commands, args cli.Args) error {
		mode, err := tree.ParseMode(strings.TrimSpace(args.Get(2)))
		if err != nil {
			return err
		}
		source, target := args.Get(1), args.Get(3)
		var r command.Result
		switch mode {
		case tree.ModeBefore:
			r = c.MoveBefore(env.Store, source, target)
		case tree.ModeAfter:
			r = c.MoveAfter(env.Store, source, target)
		default:
			r = c.MoveInto(env.Store, source, target)
		}
		return commit(env, "move", r)
	})
}

func runSet(ctx context.Context, cmd *cli.Command) error {
	return mutate(ctx, cmd, 4, func(env *state.LocalEnv, c *command.Commands, args cli.Args) error {
		sctx, err := styleContext(env, cmd)
		if err != nil {
			return err
		}
		return commit(env, "set", c.SetStyle(env.Store, args.Get(1), args.Get(2), args.Get(3), sctx))
	})
}

func runReset(ctx context.Context, cmd *cli.Command) error {
	return mutate(ctx, cmd, 3, func(env *state.LocalEnv, c *command.Commands, args cli.Args) error {
		sctx, err := styleContext(env, cmd)
		if err != nil {
			return err
		}
		return commit(env, "reset", c.ResetStyle(env.Store, args.Get(1), args.Get(2), sctx))
	})
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
