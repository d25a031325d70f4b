package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/config"
	"github.com/geange/dfamin/internal/dfafile"
	"github.com/geange/dfamin/internal/logging"
	"github.com/geange/dfamin/internal/render"
)

type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:   "hopcroft",
		Short: "Minimize deterministic finite automata",
		Long: `hopcroft partitions the states of a deterministic finite automaton into
classes of indistinguishable states using Hopcroft's algorithm, and prints the
partition together with the minimized automaton.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	flags.String(config.KeyLogLevel, "warn", "log level: debug, info, warn, error")
	flags.Bool(config.KeyDevelopment, false, "human readable logs")
	flags.String(config.KeyFormat, config.FormatText,
		fmt.Sprintf("output format of the minimized automaton (%s)", strings.Join(config.Formats, ", ")))
	flags.Bool(config.KeyCanonical, false, "sort states by name before refinement")

	root.AddCommand(a.newDemoCmd(), a.newMinimizeCmd())
	return root
}

// report minimizes t and writes the partition followed by the quotient automaton.
func (a *app) report(w io.Writer, name string, t *automaton.Table[string, string]) error {
	opts := []automaton.Option[string]{automaton.WithLogger[string](a.logger)}
	if a.cfg.Canonical {
		opts = append(opts, automaton.WithCompare(strings.Compare))
	}

	p := t.Minimize(opts...)
	stats := p.Stats()
	a.logger.Info("minimized",
		zap.String("automaton", name),
		zap.Int("states", p.NumStates()),
		zap.Int("blocks", p.Len()),
		zap.Int("pops", stats.Pops),
		zap.Int("splits", stats.Splits))

	q, err := t.Quotient(p)
	if err != nil {
		return err
	}

	switch a.cfg.Format {
	case config.FormatDot:
		return render.Dot(w, name, q)
	case config.FormatYAML:
		data, err := dfafile.FromTable(name, q).Marshal()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		if err := render.Partition(w, p); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		return render.Table(w, q)
	}
}
