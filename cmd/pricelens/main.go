// Command pricelens extracts product/price records from supplier price
// lists (xlsx, pdf, html, scans) and prints them as JSON or text.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pricelens/pricelens"
	"github.com/pricelens/pricelens/extract"
)

var (
	verbose         bool
	maxRecords      int
	outputFormat    string
	forceAllMethods bool
	ocrLanguages    string
)

var rootCmd = &cobra.Command{
	Use:   "pricelens",
	Short: "Extract product/price records from messy supplier price lists",
	Long: `pricelens infers the tabular structure of price lists without templates
or per-supplier configuration, then extracts product, price and unit
columns from xlsx workbooks, PDF documents, HTML exports and scans.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract records from a price list file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Show the inferred structure of a price list without extracting",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	extractCmd.Flags().IntVar(&maxRecords, "max-records", 0, "cap the number of extracted records (0 = default)")
	extractCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: json or text")
	extractCmd.Flags().BoolVar(&forceAllMethods, "force-all-methods", false, "run every acquisition method and keep the best table")
	extractCmd.Flags().StringVar(&ocrLanguages, "ocr-languages", "", `tesseract languages for scanned input, e.g. "eng+rus"`)

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func analyzer(path string) *pricelens.Analyzer {
	a := pricelens.Open(path)
	if maxRecords > 0 {
		a = a.MaxRecords(maxRecords)
	}
	if forceAllMethods {
		a = a.ForceAllMethods()
	}
	if ocrLanguages != "" {
		a = a.OCRLanguages(ocrLanguages)
	}
	return a
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	slog.Debug("extracting", "file", path, "methods", analyzer(path).MethodNames())

	result, err := analyzer(path).Extract()
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}

	slog.Debug("extraction finished",
		"records", len(result.Records),
		"structure", result.Stats.Structure,
		"success_rate", result.Stats.SuccessRate,
		"table", result.Stats.TableID)

	switch outputFormat {
	case "json":
		return printJSON(cmd, result)
	case "text":
		printText(cmd, result)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or text)", outputFormat)
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := args[0]

	c, err := analyzer(path).Classify()
	if err != nil {
		return fmt.Errorf("classify %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "structure:   %s (confidence %.2f)\n", c.Type, c.Confidence)
	if c.HeaderRow >= 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "header row:  %d\n", c.HeaderRow)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "header row:  none")
	}
	for _, m := range c.Mappings {
		fmt.Fprintf(cmd.OutOrStdout(), "column %-3d  %-8s confidence %.2f (%s)\n",
			m.Column, m.Role, m.Confidence, m.Evidence)
	}
	return nil
}

// output is the JSON envelope for extract results.
type output struct {
	Records []extract.Record `json:"records"`
	Stats   extract.Stats    `json:"stats"`
}

func printJSON(cmd *cobra.Command, result *pricelens.Result) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(output{Records: result.Records, Stats: result.Stats})
}

func printText(cmd *cobra.Command, result *pricelens.Result) {
	w := cmd.OutOrStdout()
	for _, rec := range result.Records {
		fmt.Fprintf(w, "%-40s %12.2f", rec.Product, rec.Price)
		if rec.Unit != "" {
			fmt.Fprintf(w, " /%s", rec.Unit)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\n%d of %d rows extracted (%.0f%%), structure %s\n",
		result.Stats.Extracted, result.Stats.TotalRows,
		result.Stats.SuccessRate*100, result.Stats.Structure)
}
