package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/casl2"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/languageServer"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/lint"
	"github.gatech.edu/ECEInnovation/CASL2-LanguageServer/util"
)

var (
	flagConfig string
	flagDebug  bool
	flagFormat string

	config util.Config
)

func main() {
	err := rootCmd.Execute()
	util.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "casl2-language-server",
	Short:         "Language server for CASL2 assembly",
	Long:          "Without a subcommand the server accepts clients over TCP so it can be debugged remotely.",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = util.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
		return util.InitLogging(flagDebug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return languageServer.ListenAndServeTCP(config)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML file with server defaults")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging to stderr")

	rootCmd.AddCommand(languageServerCmd)
	rootCmd.AddCommand(wsCmd)
	rootCmd.AddCommand(analyzeCmd)
}

var languageServerCmd = &cobra.Command{
	Use:   "languageServer [debug]",
	Short: "Serve a single client over stdin and stdout",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 && args[0] != "debug" {
			return fmt.Errorf("unknown argument %q", args[0])
		}
		if len(args) == 1 {
			flagDebug = true
		}
		return util.InitLogging(flagDebug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		languageServer.ListenAndServe(config)
		return nil
	},
}

var wsCmd = &cobra.Command{
	Use:   "ws",
	Short: "Serve clients over websockets on /ws",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return languageServer.ListenAndServeWebSocket(config)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Print the diagnostics of a CASL2 source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&flagFormat, "format", "text", "output format: json|text")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if flagFormat != "json" && flagFormat != "text" {
		return fmt.Errorf("invalid format %q: must be json or text", flagFormat)
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read file %s: %w", args[0], err)
	}
	text := string(b)

	snap := casl2.AnalyzeText(text, config.CompileOption())
	diagnostics := append([]casl2.Diagnostic{}, snap.Diagnostics...)
	if config.Lint.Enabled {
		w := lint.NewWorker(args[0], lint.NewLinter(config.Lint.DisabledRules...))
		diagnostics = append(diagnostics, w.Lint(text, 1)...)
	}
	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i].Range.Start, diagnostics[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Char < b.Char
	})

	out := cmd.OutOrStdout()
	if flagFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	}

	for _, d := range diagnostics {
		fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", args[0], d.Range.Start.Line+1, d.Range.Start.Char+1, severityName(d.Severity), d.Message)
	}
	return nil
}

func severityName(s casl2.DiagnosticSeverity) string {
	switch s {
	case casl2.Error:
		return "error"
	case casl2.Warning:
		return "warning"
	case casl2.Information:
		return "info"
	default:
		return "hint"
	}
}
