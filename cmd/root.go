package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/nessusparse/pkg/config"
	"github.com/user/nessusparse/pkg/engine"
	"github.com/user/nessusparse/pkg/logging"
	"github.com/user/nessusparse/pkg/nessus"
	"github.com/user/nessusparse/pkg/report"
	"github.com/user/nessusparse/pkg/ui"
)

// EnvLogLevel sets the log level when --log-level is not given.
const EnvLogLevel = "NESSUSPARSE_LOG_LEVEL"

type rootOptions struct {
	debug    bool
	logLevel string
	noColor  bool
	noBanner bool
	desc     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nessusparse INFILE [OUTFILE]",
		Short: "Convert a Nessus report into a per-severity Excel workbook",
		Long: `NessusParse reads a .nessus (v2) scan export and writes an .xlsx workbook
with one worksheet per severity (Critical, High, Moderate, Low).
Informational findings are left out.

If OUTFILE is omitted the workbook is written next to INFILE.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(cmd.ErrOrStderr(), opts.level())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				ui.NewPrinter(cmd.OutOrStdout(), !opts.noColor).Error("loading config: %v", err)
				return reportedError{err}
			}
			p := ui.NewPrinter(cmd.OutOrStdout(), !opts.noColor && !cfg.NoColor)
			if !opts.noBanner {
				p.Banner()
			}

			in := args[0]
			out := defaultOutput(in)
			if len(args) == 2 {
				out = args[1]
			}

			ropts, err := cfg.ReportOptions()
			if err != nil {
				p.Error("%v", err)
				return reportedError{err}
			}
			if opts.desc {
				ropts.Columns = report.WithColumn(ropts.Columns, report.DescriptionColumn)
			}
			return convert(p, in, out, ropts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default warn, env "+EnvLogLevel+")")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.noBanner, "no-banner", false, "Do not print the banner")
	cmd.Flags().BoolVarP(&opts.desc, "desc", "d", false, "Include the finding description column")

	cmd.AddCommand(newConfigCmd())
	return cmd
}

// level resolves the log level: --debug wins, then --log-level, then the
// environment, then warn.
func (o *rootOptions) level() slog.Level {
	switch {
	case o.debug:
		return slog.LevelDebug
	case o.logLevel != "":
		return logging.ParseLevel(o.logLevel)
	case os.Getenv(EnvLogLevel) != "":
		return logging.ParseLevel(os.Getenv(EnvLogLevel))
	default:
		return slog.LevelWarn
	}
}

// reportedError marks an error the user has already been shown.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func convert(p *ui.Printer, in, out string, opts report.Options) error {
	if err := runConvert(p, in, out, opts); err != nil {
		return reportedError{err}
	}
	return nil
}

func runConvert(p *ui.Printer, in, out string, opts report.Options) error {
	if !hasExt(in, nessus.Extension) {
		err := fmt.Errorf("the input file must end with %s", nessus.Extension)
		p.Error("%s", upperFirst(err.Error()))
		return err
	}
	if !hasExt(out, report.Extension) {
		err := fmt.Errorf("the output file must end with %s", report.Extension)
		p.Error("%s", upperFirst(err.Error()))
		return err
	}

	doc, err := nessus.Load(in)
	if err != nil {
		switch {
		case errors.Is(err, nessus.ErrIO):
			p.Error("Could not read %s: %v", in, err)
		case errors.Is(err, nessus.ErrParse):
			p.Error("%s is not well-formed XML: %v", in, err)
		case errors.Is(err, nessus.ErrInvalidFormat):
			p.Error("%s is not a Nessus v2 report: %v", in, err)
		default:
			p.Error("%v", err)
		}
		return err
	}

	buckets := engine.Extract(doc)
	slog.Debug("extracted findings", "total", buckets.Len(), "summary", buckets.Summary())

	p.Status("Writing output to file: %s", p.Path(out))
	res, err := report.Write(buckets, out, opts)
	if errors.Is(err, report.ErrNoFindings) {
		p.Success("No findings rated Low or above in %s, no workbook written", in)
		return nil
	}
	if err != nil {
		p.Error("Could not write %s: %v", out, err)
		return err
	}

	p.Counts(buckets.Counts())
	p.Success("Wrote %d findings to %d worksheets in %s", res.Rows, len(res.Sheets), p.Path(res.Path))
	return nil
}

func defaultOutput(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + report.Extension
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
