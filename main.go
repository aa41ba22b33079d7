package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kramach/lifo-taxes/accounting"
	"github.com/kramach/lifo-taxes/parser"
	"github.com/kramach/lifo-taxes/report"
)

func usage() {
	fmt.Printf("Usage: %s [OPTIONS] consolidated-report.csv\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Turns on debug logging")

	var year int
	flag.IntVar(&year, "year", time.Now().Year()-1, "Tax year to report sales for")

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	filename := flag.Arg(0)

	lots, disposals, err := parser.ReadConsolidatedFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	log.Debugf("read %d buys and %d sells", len(lots), len(disposals))

	matcher := accounting.NewMatcher(accounting.Year(year))
	warnings := matcher.Match(lots, disposals)

	for _, w := range warnings {
		os.Stderr.WriteString(fmt.Sprintf("\033[0;31mWarning: %s\033[0m\n", w))
	}

	rows := report.Build(lots, matcher.Dust)
	if err := report.WriteCSV(os.Stdout, rows); err != nil {
		log.Fatal(err)
	}
}
