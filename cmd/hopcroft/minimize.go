package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geange/dfamin/internal/dfafile"
)

func (a *app) newMinimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minimize FILE",
		Short: "Minimize the automaton described by a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dfafile.Load(args[0])
			if err != nil {
				return err
			}
			t, err := d.Table()
			if err != nil {
				return err
			}

			name := d.Name
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			a.logger.Debug("loaded automaton",
				zap.String("path", args[0]),
				zap.Int("states", len(t.States())),
				zap.Int("symbols", len(t.Alphabet())))
			return a.report(cmd.OutOrStdout(), name, t)
		},
	}
}
