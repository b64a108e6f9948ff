package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"exchange-catalog/models"
	"exchange-catalog/services"
	"exchange-catalog/source"
	"exchange-catalog/utils"
)

func newAveragesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "averages <destination-id>",
		Short: "Show computed cost and rating averages for a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), a.fetchTimeout())
			defer cancel()

			id := strings.TrimSpace(args[0])
			avg, err := source.FetchObject[models.DestinationAverages](ctx, a.src, models.DestinationAveragesEndpoint(id))
			if err != nil {
				return fmt.Errorf("failed to load averages for %s: %w", id, err)
			}

			title := id
			if avg.City != "" {
				title = avg.City
				if avg.Country != "" {
					title += ", " + avg.Country
				}
			}
			a.insights.PrintCards(title, services.AveragesCards(avg))
			return nil
		},
	}
}

func newOverviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Platform-wide dashboard: partnerships, course matching and destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eps := []models.Endpoint{
				models.PartnershipAnalyticsEndpoint,
				models.CourseInsightsEndpoint,
				models.DestinationsEndpoint,
				models.MentorsEndpoint,
				models.AccommodationsEndpoint,
				models.UniversityHousingEndpoint,
			}
			pool := utils.NewWorkerPool(a.cfg.MaxConcurrency, a.cfg.RateLimitMs)
			bodies, err := source.LoadAll(cmd.Context(), a.src, pool, eps, a.logger)
			if err != nil {
				a.logger.Warn("[overview] some sections failed to load: %v", err)
			}
			if len(bodies) == 0 {
				return fmt.Errorf("failed to load overview: %w", err)
			}

			for _, section := range overviewSections(bodies) {
				a.insights.PrintCards(section.title, section.cards)
			}
			return nil
		},
	}
}

type overviewSection struct {
	title string
	cards []services.StatCard
}

// overviewSections decodes whatever LoadAll returned. Missing or malformed
// sections render as N/A rather than failing the dashboard.
func overviewSections(bodies map[string][]byte) []overviewSection {
	var sections []overviewSection

	partners := []services.StatCard{
		{Label: "Partner universities", Value: services.NotAvailable},
		{Label: "Countries", Value: services.NotAvailable},
		{Label: "Most common partnership", Value: services.NotAvailable},
	}
	if body, ok := bodies[models.PartnershipAnalyticsEndpoint.Path]; ok {
		if pa, err := source.DecodeObject[models.PartnershipAnalytics](body); err == nil {
			partners[0].Value = strconv.Itoa(pa.TotalPartners)
			partners[1].Value = strconv.Itoa(pa.Countries)
			if t, ok := topType(pa.ByType); ok {
				partners[2].Value = t
			}
		}
	}
	sections = append(sections, overviewSection{"Partnerships", partners})

	courses := []services.StatCard{
		{Label: "Submissions", Value: services.NotAvailable},
		{Label: "Success rate", Value: services.NotAvailable},
		{Label: "Top university", Value: services.NotAvailable},
	}
	if body, ok := bodies[models.CourseInsightsEndpoint.Path]; ok {
		if ci, err := source.DecodeObject[models.CourseMatchingInsights](body); err == nil {
			courses[0].Value = strconv.Itoa(ci.TotalSubmissions)
			if ci.TotalSubmissions > 0 && ci.SuccessRate != nil {
				courses[1].Value = fmt.Sprintf("%.0f%%", *ci.SuccessRate)
			}
			if len(ci.TopUniversities) > 0 {
				courses[2].Value = ci.TopUniversities[0]
			}
		}
	}
	sections = append(sections, overviewSection{"Course matching", courses})

	community := []services.StatCard{
		{Label: "Destinations", Value: countOf[models.Destination](bodies, models.DestinationsEndpoint)},
		{Label: "Mentors", Value: countOf[models.Mentor](bodies, models.MentorsEndpoint)},
		{Label: "Accommodation reviews", Value: countOf[models.Accommodation](bodies, models.AccommodationsEndpoint)},
		{Label: "University housing", Value: countOf[models.Accommodation](bodies, models.UniversityHousingEndpoint)},
	}
	sections = append(sections, overviewSection{"Community", community})

	return sections
}

func countOf[T any](bodies map[string][]byte, ep models.Endpoint) string {
	body, ok := bodies[ep.Path]
	if !ok {
		return services.NotAvailable
	}
	items, err := source.DecodeCollection[T](body, ep.Collection)
	if err != nil {
		return services.NotAvailable
	}
	return strconv.Itoa(len(items))
}

// topType returns the most common partnership type, ties broken by name.
func topType(byType map[string]int) (string, bool) {
	if len(byType) == 0 {
		return "", false
	}
	names := make([]string, 0, len(byType))
	for k := range byType {
		names = append(names, k)
	}
	slices.Sort(names)
	best := names[0]
	for _, n := range names[1:] {
		if byType[n] > byType[best] {
			best = n
		}
	}
	return best, true
}
