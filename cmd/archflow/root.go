package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/architecture"
	"github.com/dd0wney/cluso-archflow/pkg/config"
	"github.com/dd0wney/cluso-archflow/pkg/explorer"
	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/metrics"
)

// app is the state shared by every command of one invocation.
type app struct {
	v            *viper.Viper
	cfgFile      string
	printMetrics bool
	logOut       io.Writer

	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	dataset *architecture.Dataset
	session *explorer.Session
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "archflow",
		Short: "Explore signal flow through network architectures",
		Long: `archflow loads a set of sub-networks and the architectures that wire them
together, then traces chains from start nodes, prints their hierarchy and
simulates how a signal propagates through the logic gates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logOut = cmd.ErrOrStderr()
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !a.printMetrics || a.metrics == nil {
				return nil
			}
			return a.metrics.WriteText(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String(config.KeyDataDir, config.DefaultDataDir, "dataset directory")
	flags.Int(config.KeyArchitecture, 0, "architecture id (default: first in the dataset)")
	flags.StringP(config.KeyDirection, "d", config.DefaultDirection, "traversal direction: input or output")
	flags.Int("step-ms", config.DefaultStepMillis, "animation step per depth level in milliseconds")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.String("log-format", config.DefaultLogFormat, "log format: json or text")
	flags.BoolVar(&a.printMetrics, "print-metrics", false, "write Prometheus metrics to stderr after the command")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "print-metrics" {
			return
		}
		// Every other flag is a config key spelled with hyphens
		_ = a.v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	root.SetHelpFunc(renderHelp)

	root.AddCommand(
		newArchsCmd(a),
		newOptionsCmd(a),
		newFindCmd(a),
		newChainCmd(a),
		newTreeCmd(a),
		newAncestorsCmd(a),
		newFlowCmd(a),
		newDescribeCmd(a),
		newLayoutCmd(a),
		newMetricsCmd(a),
		newExploreCmd(a),
	)
	return root
}

// setup loads configuration and the dataset, then selects the configured
// architecture.
func (a *app) setup() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(a.logOut, cfg.Level(), cfg.Format())
	logging.SetDefaultLogger(a.logger)
	a.metrics = metrics.NewRegistry()

	ds, err := architecture.Load(cfg.DataDir, a.logger)
	if err != nil {
		return err
	}
	a.dataset = ds

	a.session = explorer.NewSession(ds, explorer.Options{
		Logger:    a.logger,
		Metrics:   a.metrics,
		Direction: algorithms.ParseDirection(cfg.Direction),
		Step:      cfg.Step(),
	})

	archID := cfg.ArchitectureID
	if archID == 0 {
		archID = ds.DefaultArchitectureID()
	}
	if err := a.session.SelectArchitecture(archID); err != nil {
		return fmt.Errorf("cannot select architecture: %w", err)
	}
	return nil
}

// chainFor computes the chain of the given start nodes.
func (a *app) chainFor(startNodes []string) (algorithms.Chain, error) {
	return a.session.SetSearchNodes(startNodes)
}
