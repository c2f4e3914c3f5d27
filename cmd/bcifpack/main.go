// Command bcifpack analyzes tabular data with the BinaryCIF encoding
// selector and reports the chosen pipelines and resulting sizes.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/bcifpack/pkg/bcif"
	"github.com/ajitpratap0/bcifpack/pkg/compress"
	"github.com/ajitpratap0/bcifpack/pkg/compression"
	"github.com/ajitpratap0/bcifpack/pkg/config"
	"github.com/ajitpratap0/bcifpack/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "bcifpack",
		Short: "BinaryCIF column compression toolkit",
		Long: "bcifpack selects the smallest reversible encoding pipeline for every " +
			"column of a BinaryCIF-style container and reports the resulting sizes.",
	}

	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type analyzeFlags struct {
	configPath string
	tolerance  float64
	workers    int
	logLevel   string
	format     string
	transport  string
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Compress CSV columns and report the selected encodings",
		Long: "analyze reads a CSV file, infers a column type for every column " +
			"(integer, float or string, with a mask for missing cells), runs the " +
			"compression search on each column and prints the selected encoding " +
			"pipelines together with uncompressed, encoded and post-transport sizes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "configuration file")
	cmd.Flags().Float64VarP(&flags.tolerance, "tolerance", "t", 0, "relative float tolerance (overrides config)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", -1, "worker count, 0 = all CPUs (overrides config)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides config)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "table", "output format: table or json")
	cmd.Flags().StringVar(&flags.transport, "transport", "", "transport codec for size estimates (overrides config)")

	return cmd
}

func runAnalyze(path string, flags *analyzeFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.tolerance > 0 {
		cfg.FloatTolerance = flags.tolerance
	}
	if flags.workers >= 0 {
		cfg.Workers = flags.workers
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.transport != "" {
		cfg.Transport = flags.transport
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Encoding: "console"}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("analyze")

	category, rows, err := readCSV(path)
	if err != nil {
		return err
	}
	log.Info("loaded CSV",
		zap.String("file", path),
		zap.Int("rows", rows),
		zap.Int("columns", category.Len()))

	compressor := compress.New(compress.Config{
		FloatTolerance: cfg.FloatTolerance,
		Workers:        cfg.Workers,
		Logger:         log,
	})

	algorithm, err := compression.ParseAlgorithm(cfg.Transport)
	if err != nil {
		return err
	}
	codec, err := compression.New(algorithm, compression.Default)
	if err != nil {
		return err
	}

	reports := make([]columnReport, 0, category.Len())
	for _, name := range category.Names() {
		col, _ := category.Get(name)
		report, err := analyzeColumn(compressor, codec, name, col)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	switch flags.format {
	case "json":
		return printJSON(reports)
	case "table":
		return printTable(reports)
	default:
		return fmt.Errorf("unknown output format %q", flags.format)
	}
}

// columnReport summarizes the compression outcome for one column.
type columnReport struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Rows           int      `json:"rows"`
	Masked         bool     `json:"masked"`
	Pipeline       []string `json:"pipeline"`
	RawBytes       int      `json:"raw_bytes"`
	EncodedBytes   int      `json:"encoded_bytes"`
	TransportBytes int      `json:"transport_bytes"`
}

func analyzeColumn(compressor *compress.Compressor, codec *compression.Codec, name string, col *bcif.Column) (columnReport, error) {
	compressed, err := compressor.CompressColumn(col)
	if err != nil {
		return columnReport{}, err
	}

	rawSize, err := bcif.NewData(col.Data.Array()).EncodedSize()
	if err != nil {
		return columnReport{}, err
	}
	encodedSize, err := compressed.Data.EncodedSize()
	if err != nil {
		return columnReport{}, err
	}
	payload, err := compressed.Data.Serialize()
	if err != nil {
		return columnReport{}, err
	}
	transportSize, err := codec.CompressedSize(payload)
	if err != nil {
		return columnReport{}, err
	}

	pipeline := make([]string, 0, len(compressed.Data.Encodings())+1)
	for _, enc := range compressed.Data.Encodings() {
		pipeline = append(pipeline, enc.Kind())
	}
	if len(pipeline) == 0 {
		pipeline = append(pipeline, bcif.KindByteArray)
	}

	return columnReport{
		Name:           name,
		Kind:           col.Data.Array().Kind().String(),
		Rows:           col.Data.Array().Len(),
		Masked:         col.Mask != nil,
		Pipeline:       pipeline,
		RawBytes:       rawSize,
		EncodedBytes:   encodedSize,
		TransportBytes: transportSize,
	}, nil
}

func printJSON(reports []columnReport) error {
	out, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printTable(reports []columnReport) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tKIND\tROWS\tPIPELINE\tRAW\tENCODED\tTRANSPORT")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
			r.Name, r.Kind, r.Rows, joinPipeline(r.Pipeline),
			r.RawBytes, r.EncodedBytes, r.TransportBytes)
	}
	return w.Flush()
}

func joinPipeline(stages []string) string {
	out := ""
	for i, s := range stages {
		if i > 0 {
			out += "+"
		}
		out += s
	}
	return out
}

// readCSV loads a CSV file into a category, inferring a column type for
// every column. Missing cells are marked in a mask array.
func readCSV(path string) (*bcif.Category, int, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the CLI user
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(records) < 1 {
		return nil, 0, fmt.Errorf("CSV file %s is empty", path)
	}

	header := records[0]
	rows := records[1:]

	category := bcif.NewCategory()
	for i, name := range header {
		cells := make([]string, len(rows))
		for r, record := range rows {
			if i < len(record) {
				cells[r] = record[i]
			}
		}
		category.Set(name, inferColumn(cells))
	}
	return category, len(rows), nil
}

// missing reports whether a CSV cell represents an absent value, using the
// CIF conventions "." and "?" in addition to the empty cell.
func missing(cell string) bool {
	return cell == "" || cell == "." || cell == "?"
}

// inferColumn picks the narrowest logical type all present cells agree on:
// integer, then float, then string.
func inferColumn(cells []string) *bcif.Column {
	isInt, isFloat := true, true
	hasMissing := false
	for _, cell := range cells {
		if missing(cell) {
			hasMissing = true
			continue
		}
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
	}

	var mask *bcif.Data
	if hasMissing {
		maskValues := make([]int64, len(cells))
		for i, cell := range cells {
			if missing(cell) {
				maskValues[i] = 2
			}
		}
		mask = bcif.NewData(bcif.NewIntArray(maskValues, bcif.TypeUint8))
	}

	switch {
	case isInt:
		values := make([]int64, len(cells))
		for i, cell := range cells {
			if !missing(cell) {
				values[i], _ = strconv.ParseInt(cell, 10, 64)
			}
		}
		return bcif.NewColumn(bcif.NewData(bcif.NewIntArray(values, bcif.TypeInt32)), mask)
	case isFloat:
		values := make([]float64, len(cells))
		for i, cell := range cells {
			if !missing(cell) {
				values[i], _ = strconv.ParseFloat(cell, 64)
			}
		}
		return bcif.NewColumn(bcif.NewData(bcif.NewFloatArray(values, bcif.TypeFloat64)), mask)
	default:
		return bcif.NewColumn(bcif.NewData(bcif.NewStringArray(cells)), mask)
	}
}
