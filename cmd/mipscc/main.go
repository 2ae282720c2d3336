// Command mipscc is the driver surface from spec §6: a single binary
// exposing the fixed mode flags over whatever translation unit it is
// given. Grounded on raymyers-ralph-cc-go and oisee-z80-optimizer, two
// pack repos that wrap a compiler/optimizer core in a cobra root
// command. Lexing, parsing, and every front-end-only mode are explicitly
// out of the core's scope (spec §1); this driver stubs them rather than
// silently pretending to own them.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mipscc"
	"mipscc/internal/codegen/mips"
	"mipscc/internal/config"
	"mipscc/internal/fixtures"
)

var version = "0.1.0-dev"

type driverFlags struct {
	lex     bool
	json    bool
	parse   bool
	xml     bool
	astMode bool
	ir      bool
	compile bool
	output  string
	debug   bool
	config  string
	fixture string
}

func main() {
	flags := &driverFlags{}

	root := &cobra.Command{
		Use:          "mipscc",
		Short:        "C-subset-to-MIPS compiler core driver",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	root.Flags().BoolVar(&flags.lex, "lex", false, "emit the token stream (front-end, not available in this build)")
	root.Flags().BoolVar(&flags.json, "json", false, "emit the AST as JSON (front-end, not available in this build)")
	root.Flags().BoolVar(&flags.parse, "parse", false, "parse only (front-end, not available in this build)")
	root.Flags().BoolVar(&flags.xml, "xml", false, "emit the AST as XML (front-end, not available in this build)")
	root.Flags().BoolVar(&flags.astMode, "ast", false, "print the parsed AST (front-end, not available in this build)")
	root.Flags().BoolVarP(&flags.ir, "ir", "i", false, "emit the three-address IR dump")
	root.Flags().BoolVarP(&flags.compile, "compile", "S", false, "emit MIPS assembly (default)")
	root.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	root.Flags().BoolVarP(&flags.debug, "debug", "d", false, "print underlying typed errors and trace lines")
	root.Flags().StringVar(&flags.config, "config", ".mipscc.yml", "path to the optional config file")
	root.Flags().StringVar(&flags.fixture, "fixture", "fibonacci", "name of the built-in AST fixture to compile (no parser is wired)")
	root.MarkFlagsMutuallyExclusive("lex", "json", "parse", "xml", "ast", "ir", "compile")

	showVersion := false
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "print the driver version")
	root.PreRunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println("mipscc", version)
			os.Exit(0)
		}
		return nil
	}

	if err := root.Execute(); err != nil {
		fatal(err, flags.debug)
	}
}

func run(flags *driverFlags) error {
	if flags.lex || flags.json || flags.parse || flags.xml || flags.astMode {
		return fmt.Errorf("front-end not available in this build: lexing and parsing are out of scope for the compiler core")
	}

	if flags.debug {
		log.SetFlags(0)
		log.SetPrefix("mipscc: ")
		log.Printf("loading config from %s", flags.config)
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}

	prog, ok := fixtures.Named()[flags.fixture]
	if !ok {
		return fmt.Errorf("unknown fixture %q", flags.fixture)
	}
	unit := mipscc.NewUnit(prog)

	out := os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch {
	case flags.ir || (!flags.compile && cfg.DefaultMode == config.ModeIR):
		if flags.debug {
			log.Printf("lowering fixture %q to IR", flags.fixture)
		}
		mod, err := unit.CompileIR()
		if err != nil {
			return err
		}
		_, err = out.Write(mipscc.DebugIR(mod))
		return err

	default: // --compile/-S, the default mode
		if flags.debug {
			log.Printf("compiling fixture %q to MIPS", flags.fixture)
		}
		opts := mips.Options{UsePIC: cfg.UsePIC(), TargetCPU: cfg.TargetCPU}
		text, data, err := unit.CompileMIPS(opts)
		if err != nil {
			return err
		}
		if _, err := out.Write([]byte(".text\n")); err != nil {
			return err
		}
		if _, err := out.Write(text); err != nil {
			return err
		}
		if len(data) > 0 {
			if _, err := out.Write([]byte(".data\n")); err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				return err
			}
		}
		return nil
	}
}

// fatal formats the single fatal-error line spec §7 mandates, bolding it
// red when stderr is a terminal, and prints the underlying typed error
// first when -d/--debug was requested.
func fatal(err error, debug bool) {
	if debug {
		fmt.Fprintf(os.Stderr, "mipscc: %v\n", err)
	}
	msg := "compilation terminated."
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = color.New(color.FgRed, color.Bold).Sprint(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
