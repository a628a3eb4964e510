package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/cliprdf/internal/clipboard"
	"github.com/matsen/cliprdf/internal/export"
	"github.com/matsen/cliprdf/internal/pdf"
	"github.com/matsen/cliprdf/internal/pipeline"
	"github.com/matsen/cliprdf/internal/reference"
)

// Output formats for convert.
const (
	FormatRDF    = "rdf"
	FormatBibTeX = "bibtex"
	FormatJSON   = "json"
)

var (
	convertFormat string
	convertOut    string
	convertPDF    string
	convertCopy   bool
)

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", FormatRDF, "Output format: rdf, bibtex or json")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Write output to this file instead of stdout")
	convertCmd.Flags().StringVar(&convertPDF, "pdf", "", "Take the DOI from this PDF when the citation has none")
	convertCmd.Flags().BoolVar(&convertCopy, "copy", false, "Also copy the output to the clipboard")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert one citation to RDF",
	Long: `Convert one citation read from a file, or from stdin when no file is given.

The citation has the author line, the title, the venue line
(venue, pp. pages, date) and an optional "DOI: ..." line.

Examples:
  pbpaste | cliprdf convert
  cliprdf convert citation.txt -o paper.rdf
  cliprdf convert citation.txt --format bibtex
  cliprdf convert citation.txt --pdf paper.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

// ConvertResult is the JSON response for convert --format json.
type ConvertResult struct {
	Paper          reference.Paper `json:"paper"`
	Irregularities []string        `json:"irregularities,omitempty"`
	Document       string          `json:"document"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	switch convertFormat {
	case FormatRDF, FormatBibTeX, FormatJSON:
	default:
		exitWithError(ExitError, "unknown format %q (want rdf, bibtex or json)", convertFormat)
	}

	text, err := readInput(args)
	if err != nil {
		exitWithError(ExitError, "reading input: %v", err)
	}

	conv := pipeline.NewConverter(export.NewRDFBuilder(cfg.RDFOptions()))
	res, err := conv.Convert(text)
	for _, irr := range res.Irregularities {
		log.Warn(irr.String())
	}
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if convertPDF != "" && !res.Paper.HasDOI() {
		doi, err := pdf.ExtractDOI(convertPDF)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if doi != "" {
			log.WithField("doi", doi).Info("DOI taken from PDF")
			res.Paper.DOI = doi
			res.Document = conv.Builder.Document(res.Paper)
		}
	}

	out := res.Document
	switch convertFormat {
	case FormatBibTeX:
		out = export.ToBibTeX(res.Paper)
	case FormatJSON:
		result := ConvertResult{Paper: res.Paper, Document: res.Document}
		for _, irr := range res.Irregularities {
			result.Irregularities = append(result.Irregularities, irr.String())
		}
		if convertOut == "" && !convertCopy {
			return outputJSON(result)
		}
		data, err := jsonString(result)
		if err != nil {
			exitWithError(ExitError, "encoding result: %v", err)
		}
		out = data
	}

	if convertCopy {
		if err := clipboard.Copy(out); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
	}

	if convertOut == "" {
		fmt.Fprintln(os.Stdout, out)
		return nil
	}
	if err := os.WriteFile(convertOut, []byte(out+"\n"), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", convertOut, err)
	}
	if humanOutput {
		fmt.Printf("Wrote %s\n", convertOut)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: convertOut})
	}
	return nil
}

// readInput returns the contents of args[0], or stdin when args is empty.
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		return string(data), err
	}
	data, err := io.ReadAll(os.Stdin)
	return string(data), err
}
