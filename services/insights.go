package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"exchange-catalog/models"
	"exchange-catalog/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cardValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	currentStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// InsightService renders stat cards, listing pages and summaries to a terminal.
type InsightService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewInsightService(logger *utils.Logger, out io.Writer) *InsightService {
	return &InsightService{logger: logger, out: out}
}

// PrintCards renders stat cards side by side under a title.
func (s *InsightService) PrintCards(title string, cards []StatCard) {
	fmt.Fprintln(s.out, titleStyle.Render(title))

	blocks := make([]string, 0, len(cards))
	for _, c := range cards {
		blocks = append(blocks, cardStyle.Render(
			cardLabelStyle.Render(c.Label)+"\n"+cardValueStyle.Render(c.Value)))
	}
	fmt.Fprintln(s.out, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
}

// PrintTable renders rows under header.
func (s *InsightService) PrintTable(header []string, rows [][]string) {
	s.logger.Debug("[insights] rendering %d rows", len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(s.out, mutedStyle.Render("  No results match the current filters."))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(header...).
		Rows(rows...)
	fmt.Fprintln(s.out, t.Render())
}

// PrintPager renders "Page x of y" and the page-number window.
func (s *InsightService) PrintPager(current, totalPages, shown, totalItems int) {
	if totalPages == 0 {
		return
	}
	var parts []string
	for _, p := range PageWindow(current, totalPages) {
		switch {
		case p == Ellipsis:
			parts = append(parts, "…")
		case p == current:
			parts = append(parts, currentStyle.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	fmt.Fprintf(s.out, "  %s   %s\n",
		strings.Join(parts, " "),
		mutedStyle.Render(fmt.Sprintf("page %d of %d, showing %d of %d", current, totalPages, shown, totalItems)))
}

// PrintNotice prints a single muted line.
func (s *InsightService) PrintNotice(msg string) {
	fmt.Fprintln(s.out, mutedStyle.Render("  "+msg))
}

// PrintOptions lists dropdown options.
func (s *InsightService) PrintOptions(field string, opts []Option) {
	fmt.Fprintln(s.out, titleStyle.Render(field))
	for _, o := range opts {
		if o.Value == WildcardValue {
			fmt.Fprintf(s.out, "  %s\n", mutedStyle.Render(o.Label+" ("+o.Value+")"))
			continue
		}
		fmt.Fprintf(s.out, "  %s\n", o.Label)
	}
}

// PrintBudget renders a budget summary with its breakdown.
func (s *InsightService) PrintBudget(b models.BudgetSummary) {
	keys := make([]string, 0, len(b.Breakdown))
	for k := range b.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cards := []StatCard{
		{"Per month", fmt.Sprintf("%.2f", b.MonthlyTotal)},
		{fmt.Sprintf("Total (%d months)", b.Months), fmt.Sprintf("%.2f", b.Total)},
		{"Monthly balance", fmt.Sprintf("%+.2f", b.MonthlyBalance)},
	}
	s.PrintCards("Budget", cards)
	for _, k := range keys {
		fmt.Fprintf(s.out, "  %-10s %10.2f\n", k, b.Breakdown[k])
	}
}

// PrintDetail renders one record as aligned key/value lines.
func (s *InsightService) PrintDetail(title string, header, row []string) {
	fmt.Fprintln(s.out, titleStyle.Render(title))
	width := 0
	for _, h := range header {
		if len(h) > width {
			width = len(h)
		}
	}
	for i, h := range header {
		fmt.Fprintf(s.out, "  %s  %s\n", cardLabelStyle.Render(fmt.Sprintf("%-*s", width, h)), row[i])
	}
}

// AveragesCards turns a destination averages object into stat cards. With
// zero submissions every average reads N/A.
func AveragesCards(a models.DestinationAverages) []StatCard {
	if a.Submissions == 0 {
		return []StatCard{
			{"Submissions", "0"},
			{"Average rent", NotAvailable},
			{"Cost of living", NotAvailable},
			{"Rating", NotAvailable},
			{"Would recommend", NotAvailable},
		}
	}
	return []StatCard{
		{"Submissions", strconv.Itoa(a.Submissions)},
		{"Average rent", fmtOptFloat(a.AvgRent, "%.0f/month")},
		{"Cost of living", fmtOptFloat(a.AvgLivingCost, "%.0f/month")},
		{"Rating", fmtOptFloat(a.AvgRating, "%.1f")},
		{"Would recommend", fmtOptFloat(a.RecommendedRate, "%.0f%%")},
	}
}
