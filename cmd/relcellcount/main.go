// relcellcount converts absolute immune cell counts in a per-sample CSV into
// relative frequencies of each sample's total cell count.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/immunoprofile/relcell"
	_ "github.com/immunoprofile/relcell/compileinfoprint"
	"github.com/immunoprofile/relcell/immune"
)

func main() {
	var file, output, delimiter string

	flag.StringVar(&file, "file", "", "Path to the CSV file with per-sample cell counts.")
	flag.StringVar(&output, "output", "", "Path for the output CSV. If empty, the output is written to stdout.")
	flag.StringVar(&delimiter, "delimiter", "", "Single-character delimiter used in the input CSV and for the output CSV. If empty, it is detected from the input, falling back to comma.")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(file, output, delimiter); err != nil {
		log.Fatalln(err)
	}
}

func run(file, output, delimiter string) error {
	path, err := relcell.MustExistingPath(file)
	if err != nil {
		return err
	}

	delim, err := resolveDelimiter(path, delimiter)
	if err != nil {
		return err
	}

	hdr, rows, err := immune.ReadTable(path, immune.RequiredCountColumns(), delim)
	if err != nil {
		return err
	}

	recs, err := immune.ConvertCellCounts(hdr, rows)
	if err != nil {
		return err
	}

	outPath := ""
	if output != "" {
		if outPath, err = relcell.ExpandPath(output); err != nil {
			return err
		}
	}

	return immune.WriteRelative(outPath, recs, delim)
}

func resolveDelimiter(path, delimiter string) (rune, error) {
	if delimiter != "" {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return 0, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		return runes[0], nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return relcell.DetermineDelimiter(relcell.SkipBOM(f)), nil
}
