// Package cmd wires the jvx command line: load a document from a file or
// stdin, optionally narrow it to a path, then render it or open the
// interactive explorer.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/jvx/internal/formatter"
	"github.com/oakwood-commons/jvx/internal/ui"
	"github.com/oakwood-commons/jvx/pkg/loader"
	"github.com/oakwood-commons/jvx/pkg/logger"
	"github.com/oakwood-commons/jvx/pkg/selector"
	"github.com/oakwood-commons/jvx/pkg/settings"
	"github.com/oakwood-commons/jvx/pkg/tree"
	"github.com/oakwood-commons/jvx/pkg/value"
)

var (
	interactive  bool
	output       string
	pathExpr     string
	treeMaxDepth int
	noColor      bool
	debug        bool
	termWidth    int
	termHeight   int
)

var rootCtx = context.Background()

// stdinIsPiped is a variable so tests can fake piped input.
var stdinIsPiped = func() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) == 0
}

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Explore JSON, YAML, TOML and NDJSON documents",
	Long: settings.CliBinaryName + ` loads a structured document and shows it as a navigable tree.
Every value is addressed by a path like $.users[2].name; use --path to jump
straight to one, or -i to browse interactively.`,
	Example: "\n  jvx config.yaml\n  jvx config.yaml -p 'users[2].name'\n  cat data.json | jvx -o yaml\n  jvx -i service.toml\n",
	Args:    cobra.MaximumNArgs(1),
	Version: settings.VersionInformation.BuildVersion,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvFallbacks(cmd)

		if err := formatter.ValidateFormat(output); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		lgr := logger.FromContext(rootCtx)

		data, err := loader.ReadInput(args, os.Stdin, stdinIsPiped())
		if err != nil {
			if errors.Is(err, loader.ErrNoInput) {
				_ = cmd.Help()
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		root, err := loader.LoadRootBytesWithLogger(data, *lgr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse input: %v\n", err)
			os.Exit(2)
		}

		root, err = resolvePath(root, pathExpr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			if errors.Is(err, errPathNotFound) {
				os.Exit(1)
			}
			os.Exit(2)
		}

		if interactive {
			if err := ui.Run(root, noColor, termWidth, termHeight); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}

		out, err := renderOutput(root)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	},
}

var errPathNotFound = errors.New("path not found")

// applyEnvFallbacks fills flags that were not set on the command line from
// JVX_* environment variables.
func applyEnvFallbacks(cmd *cobra.Command) {
	if !cmd.Flags().Changed("output") {
		if env := os.Getenv("JVX_OUTPUT"); env != "" {
			output = env
		}
	}
	if !cmd.Flags().Changed("no-color") {
		if env := os.Getenv("JVX_NO_COLOR"); env != "" && env != "0" && !strings.EqualFold(env, "false") {
			noColor = true
		}
	}
}

// resolvePath narrows root to the value addressed by expr. An empty expr
// returns root unchanged.
func resolvePath(root *value.Value, expr string) (*value.Value, error) {
	if expr == "" {
		return root, nil
	}
	path, err := selector.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", expr, err)
	}
	node, ok := tree.Select(root, path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errPathNotFound, path.String())
	}
	return node, nil
}

// renderOutput renders root in the selected non-interactive output format.
func renderOutput(root *value.Value) (string, error) {
	return formatter.Format(root, output, formatter.TreeOptions{MaxDepth: treeMaxDepth})
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + settings.CliBinaryName + " version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
			settings.CliBinaryName,
			settings.VersionInformation.BuildVersion,
			settings.VersionInformation.Commit,
			settings.VersionInformation.BuildTime)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the interactive explorer")
	rootCmd.Flags().StringVarP(&output, "output", "o", "tree", "output format: tree|json|yaml")
	rootCmd.Flags().StringVarP(&pathExpr, "path", "p", "", "narrow output to the value at this path (e.g. 'users[2].name')")
	rootCmd.Flags().IntVar(&treeMaxDepth, "depth", 0, "limit tree output depth (0 = unlimited)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose logging to stderr")
	rootCmd.Flags().IntVar(&termWidth, "width", 0, "explorer width in columns (0 = auto-detect)")
	rootCmd.Flags().IntVar(&termHeight, "height", 0, "explorer height in rows (0 = auto-detect)")

	// --max-depth is an alias for --depth.
	rootCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "max-depth" {
			name = "depth"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
