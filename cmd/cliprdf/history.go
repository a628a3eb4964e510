package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/cliprdf/internal/author"
	"github.com/matsen/cliprdf/internal/export"
	"github.com/matsen/cliprdf/internal/reference"
	"github.com/matsen/cliprdf/internal/storage"
)

var (
	historyLimit   int
	historyBibtex  bool
	historyAuthors []string
	historyAppend  string
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", DefaultHistoryLimit, "Maximum number of entries")
	historyCmd.Flags().BoolVar(&historyBibtex, "bibtex", false, "Print the entries as BibTeX")
	historyCmd.Flags().StringArrayVarP(&historyAuthors, "author", "a", nil, "Only entries with this author (\"Family\" or \"Family Given\"); repeatable")
	historyCmd.Flags().StringVar(&historyAppend, "append", "", "With --bibtex, append entries missing from this .bib file")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List or search converted citations",
	Long: `List converted citations, newest first, or search them by title,
venue and author names.

Examples:
  cliprdf history
  cliprdf history Tanaka --human
  cliprdf history -a Tanaka -a "Suzuki H"
  cliprdf history "gait rehabilitation" --bibtex > refs.bib
  cliprdf history --bibtex --append refs.bib`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := storage.OpenDB(cfg.DBPath())
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	// The index is disposable; fill it from the log on first use.
	if n, err := db.Count(); err == nil && n == 0 {
		if _, err := db.RebuildFromJSONL(cfg.HistoryPath()); err != nil {
			exitWithError(ExitDataError, "rebuilding database: %v", err)
		}
	}

	entries, err := searchHistory(db, strings.Join(args, " "), historyAuthors, historyLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if historyBibtex {
		papers := make([]reference.Paper, len(entries))
		for i, e := range entries {
			papers[i] = e.Paper
		}
		if historyAppend == "" {
			fmt.Print(export.ToBibTeXList(papers))
			return nil
		}
		return appendBibTeX(historyAppend, papers)
	}

	if !humanOutput {
		if entries == nil {
			entries = []storage.Entry{}
		}
		return outputJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No entries")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.ConvertedAt.Local().Format("2006-01-02 15:04"), e.ID)
		fmt.Printf("    %s\n", truncateString(e.Paper.Title, HistoryTitleMaxLen))
		fmt.Printf("    %s / %s\n", formatAuthorsShort(e.Paper.Authors, HistoryAuthorsShown), e.Paper.Venue)
		if e.File != "" {
			fmt.Printf("    %s\n", e.File)
		}
	}
	return nil
}

// searchHistory runs the text search, then keeps entries matching every
// author filter, up to limit.
func searchHistory(db *storage.DB, query string, authors []string, limit int) ([]storage.Entry, error) {
	var queries []author.Query
	for _, a := range authors {
		if q := author.ParseQuery(a); !q.IsZero() {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return db.Search(query, limit)
	}

	all, err := db.Search(query, 0)
	if err != nil {
		return nil, err
	}
	var matched []storage.Entry
	for _, e := range all {
		if !author.AllMatch(queries, e.Paper.Authors) {
			continue
		}
		matched = append(matched, e)
		if limit > 0 && len(matched) == limit {
			break
		}
	}
	return matched, nil
}

// AppendResult is the response for history --bibtex --append.
type AppendResult struct {
	Status   string `json:"status"`
	Path     string `json:"path"`
	Appended int    `json:"appended"`
	Skipped  int    `json:"skipped"`
}

func appendBibTeX(path string, papers []reference.Paper) error {
	idx, err := export.ParseBibTeXFile(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	fresh := idx.NewEntries(papers)
	if len(fresh) > 0 {
		if err := export.AppendToBibFile(path, export.ToBibTeXList(fresh)); err != nil {
			exitWithError(ExitError, "appending to %s: %v", path, err)
		}
	}

	if humanOutput {
		fmt.Printf("Appended %d entries to %s (%d already present)\n", len(fresh), path, len(papers)-len(fresh))
		return nil
	}
	return outputJSON(AppendResult{
		Status:   "appended",
		Path:     path,
		Appended: len(fresh),
		Skipped:  len(papers) - len(fresh),
	})
}
