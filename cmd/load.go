package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zackeberger/genomics/config"
	"github.com/zackeberger/genomics/internal/fasta"
	"github.com/zackeberger/genomics/internal/matcherapp"
)

// loadCmd builds a matcher from one or more FASTA files, renders a progress
// bar while doing so, and then holds the library resident, servicing
// newline-delimited search/related commands read from stdin until EOF.
//
//	search <fragment> [min-length] [exact]
//	related <query-fasta> [fragment-length] [exact] [threshold]
var loadCmd = &cobra.Command{
	Use:   "load <fasta-path>...",
	Short: "Load a genome library and serve queries piped in over stdin",
	Args:  cobra.MinimumNArgs(1),
	Run:   loadRun,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func loadRun(cmd *cobra.Command, args []string) {
	conf := config.New()
	a := matcherapp.New(conf)

	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		genomes, err := fasta.LoadWithProgress(path, info.Size())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		for _, g := range genomes {
			a.AddGenome(g)
		}
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "search":
			runSearchLine(a, writer, fields[1:])
		case "related":
			runRelatedLine(a, writer, fields[1:])
		default:
			fmt.Fprintf(writer, "unrecognized command %q\n", fields[0])
		}
		writer.Flush()
	}
	if err := scanner.Err(); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func runSearchLine(a *matcherapp.App, writer *tabwriter.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(writer, "usage: search <fragment> [min-length] [exact]")
		return
	}
	fragment := args[0]
	minLength := a.MinimumSearchLength()
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			minLength = n
		}
	}
	exact := len(args) > 2 && args[2] == "exact"

	matches, ok := a.Search(context.Background(), fragment, minLength, exact)
	if !ok {
		fmt.Fprintln(writer, "no matches found")
		return
	}
	for _, m := range matches {
		fmt.Fprintf(writer, "%s\t%d\t%d\t\n", m.GenomeName, m.Length, m.Position)
	}
}

func runRelatedLine(a *matcherapp.App, writer *tabwriter.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(writer, "usage: related <query-fasta> [fragment-length] [exact] [threshold]")
		return
	}

	queryGenomes, err := fasta.Load(args[0])
	if err != nil {
		fmt.Fprintf(writer, "%v\n", err)
		return
	}
	if len(queryGenomes) != 1 {
		fmt.Fprintf(writer, "%s: expected exactly one record, got %d\n", args[0], len(queryGenomes))
		return
	}

	fragmentLength := a.MinimumSearchLength()
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			fragmentLength = n
		}
	}
	exact := len(args) > 2 && args[2] == "exact"
	var threshold float64
	if len(args) > 3 {
		if f, err := strconv.ParseFloat(args[3], 64); err == nil {
			threshold = f
		}
	}

	matches, ok := a.Related(context.Background(), queryGenomes[0], fragmentLength, exact, threshold)
	if !ok {
		fmt.Fprintln(writer, "no related genomes found")
		return
	}
	for _, m := range matches {
		fmt.Fprintf(writer, "%s\t%.2f\t\n", m.GenomeName, m.PercentMatch)
	}
}
