// Command floe inspects columnar data files. It loads CSV, JSON, JSON
// Lines, Avro or Parquet into a dataframe and prints it as a table, CSV or
// JSON Lines, optionally summarized or truncated.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/output"
	"github.com/floedata/floe/reader"
)

var (
	formatFlag   = flag.String("f", "table", "Output format: table, csv, jsonl")
	headFlag     = flag.Int("head", 0, "Show only the first N rows (0 = all)")
	describeFlag = flag.Bool("describe", false, "Print summary statistics instead of rows")
	schemaFlag   = flag.String("schema", "", "YAML schema file with column type overrides")
	sortFlag     = flag.String("sort", "", "Sort rows by this column before printing")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Inspect CSV, JSON, JSONL, Avro or Parquet files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s data.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f csv -head 10 data.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -describe -schema schema.yaml events.jsonl\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing data file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := flag.Arg(0)

	df, err := load(filename, *schemaFlag)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", filename)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if *sortFlag != "" {
		df, err = df.Sort([]string{*sortFlag}, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error sorting by %q: %v\n", *sortFlag, err)
			os.Exit(1)
		}
	}

	if *describeFlag {
		df, err = df.Describe()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing summary: %v\n", err)
			os.Exit(1)
		}
	}

	if *headFlag > 0 {
		df, err = df.Head(*headFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var formatter output.Formatter
	switch *formatFlag {
	case "table":
		formatter = output.NewTableFormatter(os.Stdout)
	case "csv":
		formatter = output.NewCSVFormatter(os.Stdout)
	case "json", "jsonl":
		formatter = output.NewJSONFormatter(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: table, csv, jsonl\n")
		os.Exit(1)
	}

	if err := formatter.Format(df); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

func load(filename, schemaPath string) (*frame.DataFrame, error) {
	if schemaPath != "" {
		return reader.LoadWithSchema(filename, schemaPath)
	}
	return reader.Load(filename)
}
