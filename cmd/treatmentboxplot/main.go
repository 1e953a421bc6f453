// treatmentboxplot compares immune cell population relative frequencies
// between tr1 responders and non-responders among PBMC samples, writing one
// box-and-whisker figure per population and printing per-population
// statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/immunoprofile/relcell"
	"github.com/immunoprofile/relcell/boxplot"
	"github.com/immunoprofile/relcell/cohort"
	_ "github.com/immunoprofile/relcell/compileinfoprint"
	"github.com/immunoprofile/relcell/immune"
)

func main() {
	var file, relative, boxplotDir, delimiter string

	flag.StringVar(&file, "file", "", "Path to the CSV file with treatment and cell count data (e.g., cell-count.csv).")
	flag.StringVar(&relative, "relative", "", "Path to a relative cell count CSV, as produced by relcellcount. If the file does not exist, it will be created there; if empty, the table is derived in memory only.")
	flag.StringVar(&boxplotDir, "boxplotdir", "", "Directory under which to save the generated boxplots. If empty, a temporary directory is used and each path is logged.")
	flag.StringVar(&delimiter, "delimiter", "", "Single-character delimiter used in the given CSVs and for any output CSV. If empty, it is detected from the input, falling back to comma.")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(file, relative, boxplotDir, delimiter); err != nil {
		log.Fatalln(err)
	}
}

func run(file, relative, boxplotDir, delimiter string) error {
	path, err := relcell.MustExistingPath(file)
	if err != nil {
		return err
	}

	delim, err := resolveDelimiter(path, delimiter)
	if err != nil {
		return err
	}

	hdr, rows, err := immune.ReadTable(path, cohort.RequiredTreatmentColumns(), delim)
	if err != nil {
		return err
	}
	log.Println("Loaded", path)

	recs, err := loadOrDeriveRelative(relative, hdr, rows, delim)
	if err != nil {
		return err
	}

	idx, err := cohort.IndexRelative(recs)
	if err != nil {
		return err
	}

	groups, err := cohort.Partition(hdr, rows, idx)
	if err != nil {
		return err
	}
	log.Println("Partitioned", len(groups.Responders[immune.BCell]), "responding and",
		len(groups.NonResponders[immune.BCell]), "non-responding qualifying samples")

	printComparisons(cohort.Compare(groups))

	figures, err := boxplot.Figures(groups)
	if err != nil {
		return err
	}

	dir, err := resolveBoxplotDir(boxplotDir)
	if err != nil {
		return err
	}

	for _, ct := range immune.CellTypes {
		figPath := filepath.Join(dir, ct.String()+".png")
		if err := boxplot.Save(figures[ct], figPath); err != nil {
			return err
		}
		log.Println("Saved", ct, "plot as", figPath)
	}

	return nil
}

// loadOrDeriveRelative treats the derived relative-count table as a memoized
// artifact: reuse it if the path names a file, create it if the path is
// free, and derive in memory when no path is given at all.
func loadOrDeriveRelative(relative string, hdr immune.Header, rows [][]string, delim rune) ([]immune.Relative, error) {
	if relative == "" {
		return immune.ConvertCellCounts(hdr, rows)
	}

	path, err := relcell.ExpandPath(relative)
	if err != nil {
		return nil, err
	}

	info, statErr := os.Stat(path)
	if statErr == nil && info.Mode().IsRegular() {
		_, recs, err := immune.ReadRelative(path, delim)
		if err != nil {
			return nil, err
		}
		log.Println("Loaded", path)
		return recs, nil
	}

	recs, err := immune.ConvertCellCounts(hdr, rows)
	if err != nil {
		return nil, err
	}

	if statErr == nil {
		// The path is taken by something that is not a regular file. Losing
		// the cache is recoverable; clobbering a directory is not.
		fmt.Fprintf(os.Stderr, "Warning: couldn't write CSV file %s, as the path already exists yet is not a file\n", path)
		return recs, nil
	}

	if err := immune.WriteRelative(path, recs, delim); err != nil {
		return nil, err
	}

	return recs, nil
}

func printComparisons(comparisons []cohort.Comparison) {
	fmt.Println("population\tresp_n\tresp_median\tresp_q1\tresp_q3\tnonresp_n\tnonresp_median\tnonresp_q1\tnonresp_q3\twelch_t\twelch_p")
	for _, c := range comparisons {
		fmt.Printf("%s\t%d\t%.2f\t%.2f\t%.2f\t%d\t%.2f\t%.2f\t%.2f\t%.4f\t%.4f\n",
			c.CellType,
			c.Responders.N, c.Responders.Median, c.Responders.Q1, c.Responders.Q3,
			c.NonResponders.N, c.NonResponders.Median, c.NonResponders.Q1, c.NonResponders.Q3,
			c.T, c.P)
	}
}

func resolveBoxplotDir(boxplotDir string) (string, error) {
	if boxplotDir != "" {
		dir, err := relcell.ExpandPath(boxplotDir)
		if err != nil {
			return "", err
		}

		info, err := os.Stat(dir)
		switch {
		case err == nil && !info.IsDir():
			fmt.Fprintf(os.Stderr, "Warning: can not save boxplots to %s, as it already exists but is not a directory\n", dir)
			// Fall through to the temporary directory below.
		case err == nil:
			return dir, nil
		default:
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", err
			}
			return dir, nil
		}
	}

	dir, err := os.MkdirTemp("", "boxplots-")
	if err != nil {
		return "", err
	}
	log.Println("No usable boxplot directory given; writing plots under", dir)

	return dir, nil
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
