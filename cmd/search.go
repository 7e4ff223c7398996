package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zackeberger/genomics/config"
	"github.com/zackeberger/genomics/internal/matcherapp"
)

// searchCmd loads a genome library and reports every genome containing
// (an approximate match of) a query fragment.
var searchCmd = &cobra.Command{
	Use:   "search <fragment>",
	Short: "Find genomes in a library that contain a DNA fragment",
	Long: `Loads one or more FASTA libraries and reports, for each genome that
contains the fragment (or a one-mismatch variant of it, unless --exact),
its single longest admissible match.`,
	Args: cobra.ExactArgs(1),
	Run:  searchRun,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("lib", "l", nil, "FASTA file(s) to load as the genome library")
	searchCmd.Flags().IntP("min-length", "m", 0, "minimum admissible match length (defaults to the configured search length)")
	searchCmd.Flags().BoolP("exact", "e", false, "disable the one-mismatch tolerance")
	searchCmd.MarkFlagRequired("lib")

	viper.BindPFlag("search.exact", searchCmd.Flags().Lookup("exact"))
}

func searchRun(cmd *cobra.Command, args []string) {
	fragment := args[0]
	libs, _ := cmd.Flags().GetStringSlice("lib")
	minLength, _ := cmd.Flags().GetInt("min-length")
	exact, _ := cmd.Flags().GetBool("exact")

	conf := config.New()
	a := matcherapp.New(conf)
	if err := a.LoadGenomes(libs...); err != nil {
		logrus.Fatalf("%v", err)
	}

	if minLength <= 0 {
		minLength = a.MinimumSearchLength()
	}

	matches, ok := a.Search(context.Background(), fragment, minLength, exact)
	if !ok {
		logrus.Fatalln("no matches found")
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "genome\tlength\tposition\t\n")
	for _, m := range matches {
		fmt.Fprintf(writer, "%s\t%d\t%d\t\n", m.GenomeName, m.Length, m.Position)
	}
	writer.Flush()
}
