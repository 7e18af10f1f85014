package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lenia-ca/pkg/lenia"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in initial patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := lenia.Patterns()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				type entry struct {
					Name        string `json:"name"`
					Mode        string `json:"mode"`
					Description string `json:"description"`
				}
				out := []entry{{Name: lenia.RandomPattern, Mode: lenia.Discrete.String(), Description: "random binary cells"}}
				for _, p := range patterns {
					out = append(out, entry{Name: p.Name, Mode: p.Mode.String(), Description: p.Description})
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMODE\tDESCRIPTION")
			fmt.Fprintf(tw, "%s\t%s\t%s\n", lenia.RandomPattern, lenia.Discrete, "random binary cells")
			for _, p := range patterns {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Mode, p.Description)
			}
			return tw.Flush()
		},
	}
}
