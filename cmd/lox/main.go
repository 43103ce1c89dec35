package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/lexer"
	"lox/interpreter-go/pkg/parser"
)

const cliToolVersion = "0.1.0-dev"

// usageError marks bad invocations; they exit with ExitUsage.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

var (
	colorFlag = cli.StringFlag{
		Name:  "color",
		Value: string(diag.ColorAuto),
		Usage: "colorize diagnostics: auto, always or never",
	}
	maxCallDepthFlag = cli.IntFlag{
		Name:  "max-call-depth",
		Usage: "nested call limit before a Stack overflow error (0 keeps the manifest or built-in default)",
	}

	runCommand = cli.Command{
		Name:      "run",
		Usage:     "Run a Lox source file or a lox.yml manifest",
		ArgsUsage: "[file.lox | lox.yml | dir]",
		Flags:     []cli.Flag{maxCallDepthFlag},
		Description: `Runs a single source file, or the preload and main files of a manifest
in one global environment. Without an argument lox.yml is looked up in the
current directory.`,
	}
	tokensCommand = cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a source file",
		ArgsUsage: "<file.lox>",
	}
	parseCommand = cli.Command{
		Name:      "parse",
		Usage:     "Print the syntax tree of a source file in prefix form",
		ArgsUsage: "<file.lox>",
	}
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := cli.NewApp()
	app.Name = "lox"
	app.Usage = "resolve and interpret Lox programs"
	app.Version = cliToolVersion
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{colorFlag}
	app.OnUsageError = onUsageError

	cmdRun := runCommand
	cmdRun.OnUsageError = onUsageError
	cmdRun.Action = func(ctx *cli.Context) error {
		return runAction(ctx, stdout, stderr)
	}
	cmdTokens := tokensCommand
	cmdTokens.Action = func(ctx *cli.Context) error {
		return tokensAction(ctx, stdout, stderr)
	}
	cmdParse := parseCommand
	cmdParse.Action = func(ctx *cli.Context) error {
		return parseAction(ctx, stdout, stderr)
	}
	app.Commands = []cli.Command{cmdRun, cmdTokens, cmdParse}
	app.Action = func(ctx *cli.Context) error {
		if len(ctx.Args()) == 0 {
			cli.ShowAppHelp(ctx)
			return &usageError{msg: "missing command or source file"}
		}
		return runAction(ctx, stdout, stderr)
	}

	err := app.Run(args)
	if err == nil {
		return diag.ExitOK
	}
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "lox: %v\n", err)
		return diag.ExitUsage
	}
	// Pipeline diagnostics were already printed by the reporter.
	if _, known := diag.CategoryOf(err); !known {
		fmt.Fprintf(stderr, "lox: %v\n", err)
	}
	return diag.ExitCode(err)
}

func onUsageError(ctx *cli.Context, err error, isSubcommand bool) error {
	return &usageError{msg: err.Error()}
}

func colorMode(ctx *cli.Context) (diag.ColorMode, error) {
	mode, err := diag.ParseColorMode(ctx.GlobalString(colorFlag.Name))
	if err != nil {
		return "", &usageError{msg: err.Error()}
	}
	return mode, nil
}

func runAction(ctx *cli.Context, stdout, stderr io.Writer) error {
	if len(ctx.Args()) > 1 {
		return &usageError{msg: "run takes at most one file"}
	}
	mode, err := colorMode(ctx)
	if err != nil {
		return err
	}
	cfg := driver.Config{Stdout: stdout, Stderr: stderr, MaxCallDepth: ctx.Int(maxCallDepthFlag.Name)}

	target := ctx.Args().First()
	manifestPath, isManifest, err := manifestTarget(target)
	if err != nil {
		return err
	}
	if !isManifest {
		cfg.Color = mode
		session, err := driver.NewSession(cfg)
		if err != nil {
			return err
		}
		return session.RunFile(target)
	}

	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	// An explicit --color beats the manifest.
	if ctx.GlobalIsSet(colorFlag.Name) {
		cfg.Color = mode
	}
	session, err := driver.NewManifestSession(manifest, cfg)
	if err != nil {
		return err
	}
	return session.RunManifest(manifest)
}

// manifestTarget decides whether target names a manifest: empty (search
// upwards from the working directory), a .yml/.yaml file, or a directory.
func manifestTarget(target string) (string, bool, error) {
	if target == "" {
		path, err := driver.FindManifest(".")
		if err != nil {
			return "", false, err
		}
		return path, true, nil
	}
	ext := strings.ToLower(filepath.Ext(target))
	if ext == ".yml" || ext == ".yaml" {
		return target, true, nil
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, driver.ManifestFileName), true, nil
	}
	return "", false, nil
}

func readSingleSource(ctx *cli.Context) (string, string, error) {
	if len(ctx.Args()) != 1 {
		return "", "", &usageError{msg: ctx.Command.Name + " takes exactly one file"}
	}
	path := ctx.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return path, string(data), nil
}

func tokensAction(ctx *cli.Context, stdout, stderr io.Writer) error {
	mode, err := colorMode(ctx)
	if err != nil {
		return err
	}
	path, src, err := readSingleSource(ctx)
	if err != nil {
		return err
	}
	tokens, err := lexer.Scan(src)
	for _, tok := range tokens {
		fmt.Fprintf(stdout, "%d\t%s\n", tok.Line, tok)
	}
	if err != nil {
		diag.NewReporter(stderr, mode).Report(err)
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func parseAction(ctx *cli.Context, stdout, stderr io.Writer) error {
	mode, err := colorMode(ctx)
	if err != nil {
		return err
	}
	path, src, err := readSingleSource(ctx)
	if err != nil {
		return err
	}
	stmts, err := parser.ParseSource(src)
	if err != nil {
		diag.NewReporter(stderr, mode).Report(err)
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprint(stdout, ast.Dump(stmts))
	return nil
}
