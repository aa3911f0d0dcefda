package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/mortgage-calc/internal/config"
	"github.com/iwvelando/mortgage-calc/internal/logging"
	"github.com/iwvelando/mortgage-calc/pkg/affordability"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/output"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
	"go.uber.org/zap"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `usage: mortgage-calc [-config file] [-output-format pretty|csv|yaml] [-log-level level] <command> [flags]

commands:
  payment      -principal P -rate R -years N
  loan-amount  -payment M -rate R -years N
  afford       -income I -debt D [-rate R] [-years N] [-dti X]
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// loadConfiguration reads the config file when present and falls back to the
// built-in defaults when it does not exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default()
	}
	return config.LoadConfiguration(path)
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("mortgage-calc", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configLocation := global.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := global.String("output-format", "", "type of output override: pretty, csv, yaml")
	logLevel := global.String("log-level", "", "log level override (debug, info, warn, error)")
	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return exitError
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	conf.Output.Format = outputFormat

	if err := conf.Validate(); err != nil {
		logger.Error("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	command, commandArgs := global.Arg(0), global.Args()[1:]

	var report output.Report
	switch command {
	case "payment":
		report, err = runPayment(commandArgs, conf.Defaults, stderr)
	case "loan-amount":
		report, err = runLoanAmount(commandArgs, conf.Defaults, stderr)
	case "afford":
		report, err = runAfford(commandArgs, conf.Defaults, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		global.Usage()
		return exitUsage
	}

	var usageErr usageError
	switch {
	case errors.As(err, &usageErr):
		return exitUsage
	case err != nil:
		logger.Error("calculation failed",
			zap.String("op", "main"),
			zap.String("command", command),
			zap.String("kind", validation.Kind(err)),
			zap.Error(err),
		)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	logger.Debug("calculation completed",
		zap.String("op", "main"),
		zap.String("command", command),
	)

	if err := output.Write(stdout, outputFormat, report); err != nil {
		logger.Error("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return exitError
	}
	return exitOK
}

// usageError marks a failure to parse a command's flags.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func parseCommand(fs *flag.FlagSet, args []string, stderr io.Writer) error {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return usageError{err}
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		return usageError{fmt.Errorf("unexpected arguments: %v", fs.Args())}
	}
	return nil
}

func runPayment(args []string, defaults config.Defaults, stderr io.Writer) (output.Report, error) {
	fs := flag.NewFlagSet("payment", flag.ContinueOnError)
	principal := fs.Float64("principal", 0, "loan principal")
	rate := fs.Float64("rate", defaults.AnnualInterestRate, "annual interest rate as a decimal")
	years := fs.Int("years", defaults.Years, "loan term in years")
	if err := parseCommand(fs, args, stderr); err != nil {
		return output.Report{}, err
	}

	summary, err := loans.Summarize(loans.Loan{
		Principal:          *principal,
		AnnualInterestRate: *rate,
		Years:              *years,
	})
	if err != nil {
		return output.Report{}, err
	}
	return output.FromSummary(summary), nil
}

func runLoanAmount(args []string, defaults config.Defaults, stderr io.Writer) (output.Report, error) {
	fs := flag.NewFlagSet("loan-amount", flag.ContinueOnError)
	payment := fs.Float64("payment", 0, "monthly payment")
	rate := fs.Float64("rate", defaults.AnnualInterestRate, "annual interest rate as a decimal")
	years := fs.Int("years", defaults.Years, "loan term in years")
	if err := parseCommand(fs, args, stderr); err != nil {
		return output.Report{}, err
	}

	amount, err := loans.LoanAmount(*payment, *rate, *years)
	if err != nil {
		return output.Report{}, err
	}
	return output.FromLoanAmount(output.LoanAmountResult{
		MonthlyPayment:     *payment,
		AnnualInterestRate: *rate,
		Years:              *years,
		LoanAmount:         amount,
	}), nil
}

func runAfford(args []string, defaults config.Defaults, stderr io.Writer) (output.Report, error) {
	fs := flag.NewFlagSet("afford", flag.ContinueOnError)
	income := fs.Float64("income", 0, "gross monthly income")
	debt := fs.Float64("debt", 0, "existing monthly debt payments")
	rate := fs.Float64("rate", defaults.AnnualInterestRate, "annual interest rate as a decimal")
	years := fs.Int("years", defaults.Years, "loan term in years")
	dti := fs.Float64("dti", defaults.MaxDTI, "maximum debt-to-income ratio")
	if err := parseCommand(fs, args, stderr); err != nil {
		return output.Report{}, err
	}

	assessment, err := affordability.Assess(
		affordability.Borrower{MonthlyIncome: *income, MonthlyDebt: *debt},
		*rate, *years, *dti,
	)
	if err != nil {
		return output.Report{}, err
	}
	return output.FromAssessment(assessment), nil
}
