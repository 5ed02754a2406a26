package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seatwise/seatplan/internal/application"
	"github.com/seatwise/seatplan/internal/domain"
)

type RenderOptions struct {
	Catalogue domain.Catalogue
}

func renderView(result application.RunResult, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Seat Assignment Summary"),
		s.header.Render(fmt.Sprintf("cohorts: %d", len(result.Cohorts))),
	}

	if len(result.Cohorts) == 0 {
		lines = append(lines, s.empty.Render("No cohorts were scheduled."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, cohort := range result.Cohorts {
		lines = append(lines, s.section.Render(renderCohort(cohort, s)))
	}

	lines = append(lines, s.section.Render(renderTotals(result, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCohort(cohort application.CohortOutcome, s styles) string {
	parts := []string{
		s.cohort.Render(fmt.Sprintf("%s (%s, %d seats)", cohort.Name, cohort.Pool, cohort.PoolSize)),
	}

	placed := len(cohort.Placed)
	unplaced := len(cohort.Unplaced)
	total := placed + unplaced
	if total == 0 {
		parts = append(parts, s.empty.Render("no students"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	bar := renderProgressBar(float64(placed)/float64(total), 24, s)
	line := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.poolKey.Render("placed:"),
		" ",
		bar,
		" ",
		s.detail.Render(fmt.Sprintf("%d placed, %d unplaced", placed, unplaced)),
	)
	if cohort.PreventedDouble > 0 {
		line += " " + s.warning.Render(fmt.Sprintf("[%d double-seat prevented]", cohort.PreventedDouble))
	}
	parts = append(parts, line)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderTotals(result application.RunResult, opts RenderOptions, s styles) string {
	parts := []string{
		s.cohort.Render("Totals"),
		s.detail.Render(fmt.Sprintf("assigned: %d  unassigned: %d  success: %.1f%%",
			result.TotalPlaced, result.TotalUnplaced, result.SuccessRate()*100)),
	}

	if result.PreventedDouble > 0 {
		parts = append(parts, s.warning.Render(fmt.Sprintf("double-seatings prevented: %d", result.PreventedDouble)))
	}

	if opts.Catalogue.Len() > 0 {
		breakdown := result.CategoryBreakdown(opts.Catalogue)
		for _, category := range domain.Categories() {
			count := breakdown[category]
			if count == 0 {
				continue
			}
			parts = append(parts, s.detail.Render(fmt.Sprintf("%s: %d", category.Label(), count)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderProgressBar(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(math.Round(float64(width) * fraction))
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}
