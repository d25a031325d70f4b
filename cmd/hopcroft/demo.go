package main

import (
	"github.com/spf13/cobra"

	automaton "github.com/geange/dfamin"
)

// demoTable accepts the strings over {a, b} that end in b. q1 and q2 are
// equivalent: both accept and move alike on every symbol.
func demoTable() (*automaton.Table[string, string], error) {
	t := automaton.NewTable[string, string]("q0")
	t.AddState("q1", true)
	t.AddState("q2", true)
	t.AddSymbol("a")
	t.AddSymbol("b")

	for _, tr := range [][3]string{
		{"q0", "a", "q0"}, {"q0", "b", "q1"},
		{"q1", "a", "q0"}, {"q1", "b", "q2"},
		{"q2", "a", "q0"}, {"q2", "b", "q1"},
	} {
		if err := t.SetTransition(tr[0], tr[1], tr[2]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (a *app) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Minimize a built-in automaton accepting strings that end in b",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := demoTable()
			if err != nil {
				return err
			}
			return a.report(cmd.OutOrStdout(), "ends-with-b", t)
		},
	}
}
