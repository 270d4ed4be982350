package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/lingmod-tue/exmaralda-converter/internal/exmaralda"
	"github.com/lingmod-tue/exmaralda-converter/internal/scan"
	"github.com/lingmod-tue/exmaralda-converter/internal/tsv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input_dir] [output_dir]",
	Short: "Convert a directory of transcription files to TSV dumps",
	Long: `Recursively discover transcription files in the input directory and
write one TSV data dump per file into the output directory, keeping the
base file name.

Files that fail to parse are reported and skipped; the batch continues
with the remaining files.

Examples:
  exmaralda-converter convert ./corpus ./dumps
  exmaralda-converter convert ./corpus ./dumps --concurrency 8
  exmaralda-converter convert ./corpus ./dumps --input-ext .exb --output-ext .tsv`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		String("input-ext", ".exb", "File extension of input transcriptions")
	convertCmd.Flags().
		String("output-ext", ".tsv", "File extension of generated dumps")
	convertCmd.Flags().
		Int("concurrency", 4, "Number of files converted in parallel")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inDir := args[0]
	outDir := args[1]

	inputExt, _ := cmd.Flags().GetString("input-ext")
	outputExt, _ := cmd.Flags().GetString("output-ext")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	if _, err := os.Stat(inDir); err != nil {
		return fmt.Errorf("cannot read input directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := scan.Files(inDir, inputExt)
	if err != nil {
		return fmt.Errorf("failed to scan input directory: %w", err)
	}

	logger.Infow("Starting conversion",
		"input", inDir,
		"output", outDir,
		"files", len(files),
		"concurrency", concurrency,
	)

	var converted, skipped atomic.Int64

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := convertFile(f, outputPath(f, outDir, inputExt, outputExt)); err != nil {
				logger.Warnw("Skipping file",
					"file", f,
					"error", err,
				)
				skipped.Add(1)
				return nil
			}
			converted.Add(1)
			return nil
		})
	}
	// workers never fail the group; per-file errors are logged above
	_ = g.Wait()

	absOut, _ := filepath.Abs(outDir)
	fmt.Printf("Converted %d file(s) to %s\n", converted.Load(), absOut)
	if n := skipped.Load(); n > 0 {
		fmt.Printf("  Skipped: %d (see log for details)\n", n)
	}

	return nil
}

func convertFile(inPath, outPath string) error {
	transcript, diags, err := exmaralda.ParseFile(inPath)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	for _, d := range diags {
		logger.Warnw("Parse diagnostic",
			"file", inPath,
			"diagnostic", d.String(),
		)
	}
	return os.WriteFile(outPath, []byte(tsv.Dump(transcript)), 0644)
}

// outputPath maps an input file to its dump path in the output
// directory, swapping the extension and dropping the directory part.
func outputPath(inPath, outDir, inputExt, outputExt string) string {
	base := strings.TrimSuffix(filepath.Base(inPath), inputExt)
	return filepath.Join(outDir, base+outputExt)
}
