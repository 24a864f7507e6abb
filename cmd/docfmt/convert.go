package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

func convertCmd(verbose *bool) *cobra.Command {
	var (
		from     string
		to       string
		out      string
		outDir   string
		quality  string
		fontSize int
		pageSize string
		margin   int
		preserve bool
		metadata bool
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Convert one or more files into a target format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := docfmt.ParseFormat(to)
			if err != nil {
				return err
			}
			if out != "" && len(args) > 1 {
				return fmt.Errorf("--out applies to a single input, got %d", len(args))
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
			}

			conv := docfmt.New(docfmt.Config{Logger: newLogger(*verbose)})
			opts := docfmt.Options{
				Quality:            docfmt.Quality(quality),
				FontSize:           fontSize,
				PageSize:           docfmt.PageSize(pageSize),
				Margin:             margin,
				PreserveFormatting: preserve,
				IncludeMetadata:    metadata,
				Compression:        compress,
			}

			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			summary := table.NewWriter()
			summary.SetOutputMirror(cmd.OutOrStdout())
			summary.AppendHeader(table.Row{"Input", "Output", "Size", "Time"})

			// One failing input never aborts the rest of the batch.
			failed := 0
			for _, path := range args {
				res, err := convertFile(conv, path, from, target, out, outDir, opts)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", red("x"), path, err)
					summary.AppendRow(table.Row{path, "-", "-", "-"})
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", green("ok"), path, res.path)
				summary.AppendRow(table.Row{
					path, res.path,
					fmt.Sprintf("%d B", res.size),
					fmt.Sprintf("%d ms", res.ms),
				})
			}

			if len(args) > 1 {
				summary.SetStyle(table.StyleLight)
				summary.Render()
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "source format (default: from file extension)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (single input only)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default: next to each input)")
	cmd.Flags().StringVar(&quality, "quality", "", "rendering quality: low|medium|high")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "font size for print output")
	cmd.Flags().StringVar(&pageSize, "page-size", "", "page size: a4|letter|legal")
	cmd.Flags().IntVar(&margin, "margin", 0, "page margin in points")
	cmd.Flags().BoolVar(&preserve, "preserve-formatting", false, "keep source line breaks where the target allows")
	cmd.Flags().BoolVar(&metadata, "include-metadata", false, "embed generator metadata")
	cmd.Flags().BoolVar(&compress, "compress", false, "compress PDF content streams")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

type converted struct {
	path string
	size int
	ms   int64
}

func convertFile(conv *docfmt.Converter, path, from string, target docfmt.Format, out, outDir string, opts docfmt.Options) (converted, error) {
	src, err := sourceFormat(path, from)
	if err != nil {
		return converted{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return converted{}, err
	}
	res, err := conv.Convert(content, src, target, opts)
	if err != nil {
		return converted{}, err
	}
	dest := outputPath(path, target, out, outDir)
	if err := os.WriteFile(dest, res.Bytes, 0o644); err != nil {
		return converted{}, err
	}
	return converted{path: dest, size: res.Meta.ConvertedSize, ms: res.Meta.ProcessingTimeMs}, nil
}

// sourceFormat resolves the source format flag, falling back to the file
// extension.
func sourceFormat(path, from string) (docfmt.Format, error) {
	if from != "" {
		return docfmt.ParseFormat(from)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "markdown" {
		ext = "md"
	}
	return docfmt.ParseFormat(ext)
}

func outputPath(path string, target docfmt.Format, out, outDir string) string {
	if out != "" {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := base + "." + target.String()
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(path), name)
}
