package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (a *app) newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the corpus library",
		Long: `Manage the SQLite corpus library. Stored corpora can be selected with
--corpus NAME instead of pointing --corpus-file at a text file.`,
	}
	cmd.AddCommand(a.newCorpusAddCmd(), a.newCorpusListCmd(), a.newCorpusRemoveCmd())
	return cmd
}

func (a *app) newCorpusAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME FILE",
		Short: "Store a text file in the library, replacing any corpus with that name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func(f *os.File) {
				_ = f.Close()
			}(f)

			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err = store.Add(cmd.Context(), name, f); err != nil {
				return err
			}
			info, err := store.Get(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s: %d words\n", info.Name, info.WordCount)
			return nil
		},
	}
}

func (a *app) newCorpusListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored corpora",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			infos, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			var data [][]string
			for _, info := range infos {
				data = append(data, []string{
					info.Name,
					strconv.Itoa(info.WordCount),
					strconv.Itoa(info.Bytes),
					info.AddedAt.Format("2006-01-02 15:04"),
				})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"NAME", "WORDS", "BYTES", "ADDED"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}

func (a *app) newCorpusRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a corpus from the library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err = store.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}
