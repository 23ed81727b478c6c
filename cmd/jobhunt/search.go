package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobhunt/internal/observability"
	"github.com/jonathan/jobhunt/internal/types"
)

var (
	searchQuery    string
	searchSkills   []string
	searchLocation string
	searchRemote   bool
	searchPage     int
	searchJobType  string
	searchPosted   string
	searchVerbose  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search job listings and print a page as JSON",
	Long: "Search the configured listings provider. --skills builds a planned query and ranks results by skill match; " +
		"--query searches the text as given.",
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Manual search text")
	searchCmd.Flags().StringSliceVarP(&searchSkills, "skills", "s", nil, "Comma-separated skills")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Location to search in")
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "Remote jobs only")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "Page number")
	searchCmd.Flags().StringVar(&searchJobType, "job-type", "", "FULLTIME, PARTTIME, CONTRACTOR or INTERN")
	searchCmd.Flags().StringVar(&searchPosted, "posted", "", "all, today, 3days, week or month")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print a summary to stderr")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	req := types.SearchRequest{
		Skills:     searchSkills,
		Query:      searchQuery,
		Location:   searchLocation,
		Remote:     searchRemote,
		Page:       searchPage,
		JobType:    searchJobType,
		DatePosted: searchPosted,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := newApp(ctx, cfg, appOptions{withLLM: true, logOutput: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.Search(ctx, req)
	if err != nil {
		return err
	}
	if searchVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSearchPage(result.Plan, result.Listings, result.Page, result.Exhausted)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
