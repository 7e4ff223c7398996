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
	"github.com/zackeberger/genomics/internal/fasta"
	"github.com/zackeberger/genomics/internal/matcherapp"
)

// relatedCmd loads a genome library and reports which library genomes are
// related to a query genome, by windowed hit frequency.
var relatedCmd = &cobra.Command{
	Use:   "related <query-fasta>",
	Short: "Find genomes in a library related to a query genome",
	Long: `Loads one or more FASTA libraries and a single-record query FASTA,
chops the query into disjoint windows, and reports every library genome
whose windowed hit frequency exceeds --threshold percent.`,
	Args: cobra.ExactArgs(1),
	Run:  relatedRun,
}

func init() {
	rootCmd.AddCommand(relatedCmd)

	relatedCmd.Flags().StringSliceP("lib", "l", nil, "FASTA file(s) to load as the genome library")
	relatedCmd.Flags().IntP("fragment-length", "f", 0, "window size the query is chopped into (defaults to the configured search length)")
	relatedCmd.Flags().BoolP("exact", "e", false, "disable the one-mismatch tolerance")
	relatedCmd.Flags().Float64P("threshold", "t", 0, "strict lower bound on percent match to report")
	relatedCmd.MarkFlagRequired("lib")

	viper.BindPFlag("related.fragment-length", relatedCmd.Flags().Lookup("fragment-length"))
	viper.BindPFlag("related.exact", relatedCmd.Flags().Lookup("exact"))
	viper.BindPFlag("related.threshold", relatedCmd.Flags().Lookup("threshold"))
}

func relatedRun(cmd *cobra.Command, args []string) {
	queryPath := args[0]
	libs, _ := cmd.Flags().GetStringSlice("lib")

	conf := config.New()
	fragmentLength := conf.Related.FragmentLength
	exact := conf.Related.Exact
	threshold := conf.Related.Threshold

	queryGenomes, err := fasta.Load(queryPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if len(queryGenomes) != 1 {
		logrus.Fatalf("%s: expected exactly one record, got %d", queryPath, len(queryGenomes))
	}

	a := matcherapp.New(conf)
	if err := a.LoadGenomes(libs...); err != nil {
		logrus.Fatalf("%v", err)
	}

	matches, ok := a.Related(context.Background(), queryGenomes[0], fragmentLength, exact, threshold)
	if !ok {
		logrus.Fatalln("no related genomes found")
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	fmt.Fprintf(writer, "genome\tpercent-match\t\n")
	for _, m := range matches {
		fmt.Fprintf(writer, "%s\t%.2f\t\n", m.GenomeName, m.PercentMatch)
	}
	writer.Flush()
}
