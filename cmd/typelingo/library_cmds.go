package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typelingo/internal/library"
	"github.com/verte-zerg/typelingo/internal/model"
	"github.com/verte-zerg/typelingo/internal/stats"
	"github.com/verte-zerg/typelingo/internal/textfile"
)

const (
	defaultCurveWindow = 10
	fallbackWidth      = 80
)

var (
	statsArticle     string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Translate a text file (one paragraph per line, - for stdin) and store it",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddCmd,
	}
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	lines, err := textfile.LoadLines(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	article, err := a.translator().TranslateArticle(ctx, strings.Join(lines, "\n"))
	if err != nil {
		return err
	}
	if err := a.library.SaveArticle(ctx, &article); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%d paragraphs)\n", article.ID, article.Title, len(article.Paragraphs))
	return err
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored articles",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	articles, err := a.library.ListArticles(commandContext(cmd))
	if err != nil {
		return err
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "PARAGRAPHS", "ADDED", "TITLE")
	for _, article := range articles {
		t.Row(
			article.ID,
			fmt.Sprintf("%d", len(article.Paragraphs)),
			article.CreatedAt.Local().Format("2006-01-02"),
			article.Title,
		)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <article-id>",
		Short: "Delete an article with its pairings and practice history",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	if err := a.library.DeleteArticle(ctx, args[0]); err != nil {
		return err
	}
	if err := a.store.DeleteArticleSessions(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete practice history: %w", err)
	}
	a.logger.Info("article deleted", "article", args[0])
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all pairings as JSON to file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	pairings, err := a.library.ExportPairings(commandContext(cmd))
	if err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "-" {
		return library.WritePairings(cmd.OutOrStdout(), pairings)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	if err := library.WritePairings(f, pairings); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", args[0], err)
	}
	a.logger.Info("pairings exported", "articles", len(pairings), "path", args[0])
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load pairings JSON produced by export",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	pairings, err := library.ReadPairings(f)
	if err != nil {
		return err
	}

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.library.ImportPairings(commandContext(cmd), pairings); err != nil {
		return err
	}
	a.logger.Info("pairings imported", "articles", len(pairings))
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsArticle, "article", "", "article id filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}
	cfg := model.StatsConfig{
		ArticleID:   statsArticle,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := commandContext(cmd)
	report, err := stats.BuildReport(ctx, a.store, cfg)
	if err != nil {
		return err
	}
	articles, err := a.library.ListArticles(ctx)
	if err != nil {
		return err
	}
	titles := make(map[string]string, len(articles))
	for _, article := range articles {
		titles[article.ID] = article.Title
	}
	return report.Render(cmd.OutOrStdout(), cfg, titles, outputWidth(cmd))
}

// outputWidth returns the terminal width when stdout is a terminal.
func outputWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
