package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/fuzzysystem/finance/internal/domain"
	"github.com/fuzzysystem/finance/internal/modules/accuracy"
	"github.com/fuzzysystem/finance/internal/modules/optimization"
)

type tickersCmd struct {
	base
}

func (*tickersCmd) Name() string     { return "tickers" }
func (*tickersCmd) Synopsis() string { return "list tickers and their forecast models" }
func (*tickersCmd) Usage() string {
	return `fsf tickers [-raw]

  Lists the tickers of the forecast table and the models that predict them.
`
}

func (c *tickersCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *tickersCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	container, err := c.open(ctx)
	if err != nil {
		return c.fail(err)
	}
	s := container.Sessions.Current()
	c.printMarkdown(TickersMarkdown(container.Forecast.Tickers(s.Table)))
	return subcommands.ExitSuccess
}

type forecastCmd struct {
	base
	ticker string
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "show actual and forecasted prices of a ticker" }
func (*forecastCmd) Usage() string {
	return `fsf forecast -ticker <ticker> [-raw]

  Prints the ticker's actual and predicted series at market close, with the
  padded value range used for chart axes.
`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker to show")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *forecastCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	container, err := c.open(ctx)
	if err != nil {
		return c.fail(err)
	}

	chart, err := container.Forecast.Chart(container.Sessions.Current().Table, domain.Ticker(c.ticker))
	if err != nil {
		return c.fail(err)
	}
	c.printMarkdown(ChartMarkdown(chart))
	return subcommands.ExitSuccess
}

type accuracyCmd struct {
	base
	ticker  string
	models  string
	metrics string
}

func (*accuracyCmd) Name() string     { return "accuracy" }
func (*accuracyCmd) Synopsis() string { return "score forecast models of a ticker" }
func (*accuracyCmd) Usage() string {
	return `fsf accuracy -ticker <ticker> [-models arima,hw] [-metrics rmse,mae] [-raw]

  Computes RMSE and MAE of each model's predictions against the actual prices.
`
}

func (c *accuracyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "ticker to score")
	f.StringVar(&c.models, "models", "", "comma-separated model tags (default: all)")
	f.StringVar(&c.metrics, "metrics", "", "comma-separated metrics: rmse, mae (default: all)")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *accuracyCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required")
		return subcommands.ExitUsageError
	}
	kinds, err := accuracy.ParseMetricKinds(c.metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	container, err := c.open(ctx)
	if err != nil {
		return c.fail(err)
	}

	ticker := domain.Ticker(c.ticker)
	results, err := container.Evaluator.Evaluate(
		container.Sessions.Current().Table, ticker, accuracy.ParseModelTags(c.models), kinds...)
	if err != nil {
		return c.fail(err)
	}
	messages, err := accuracy.Messages(ticker, results, container.Labels, kinds...)
	if err != nil {
		return c.fail(err)
	}
	c.printMarkdown(AccuracyMarkdown(ticker, messages))
	return subcommands.ExitSuccess
}

type optimizationCmd struct {
	base
}

func (*optimizationCmd) Name() string     { return "optimization" }
func (*optimizationCmd) Synopsis() string { return "describe the optimum portfolio" }
func (*optimizationCmd) Usage() string {
	return `fsf optimization [-raw]

  Summarizes the precomputed max-Sharpe portfolio and its series sizes.
`
}

func (c *optimizationCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal rendering")
}

func (c *optimizationCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	container, err := c.open(ctx)
	if err != nil {
		return c.fail(err)
	}
	s := container.Sessions.Current()
	if !s.HasOptimization() {
		return c.fail(errors.New("no optimization data configured (OPTIMIZATION_SOURCE)"))
	}

	surface, summary, err := optimization.Adapt(*s.Optimization)
	if err != nil {
		return c.fail(err)
	}
	c.printMarkdown(OptimizationMarkdown(surface, summary))
	return subcommands.ExitSuccess
}
