package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"exchange-catalog/models"
	"exchange-catalog/services"
	"exchange-catalog/source"
	"exchange-catalog/storage"
)

// listOptions are the list command's flags.
type listOptions struct {
	filterFlags
	page    int
	csvPath string
	retry   bool
	noStats bool
}

// catalogCommand is a catalog with its record type erased, so the four
// listing kinds can share one set of subcommands.
type catalogCommand interface {
	list(ctx context.Context, a *app, o listOptions) error
	show(ctx context.Context, a *app, id string) error
	options(ctx context.Context, a *app, field string) error
	validate() error
}

type catalogCmd[T any] struct {
	cat *services.Catalog[T]
}

var catalogs = map[string]catalogCommand{
	services.MentorCatalog.Name:        catalogCmd[models.Mentor]{services.MentorCatalog},
	services.AccommodationCatalog.Name: catalogCmd[models.Accommodation]{services.AccommodationCatalog},
	services.UniversityCatalog.Name:    catalogCmd[models.University]{services.UniversityCatalog},
	services.ExperienceCatalog.Name:    catalogCmd[models.CourseMatchingExperience]{services.ExperienceCatalog},
}

func catalogKinds() []string {
	kinds := make([]string, 0, len(catalogs))
	for k := range catalogs {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func lookupCatalog(kind string) (catalogCommand, error) {
	c, ok := catalogs[strings.ToLower(kind)]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q (want one of: %s)", kind, strings.Join(catalogKinds(), ", "))
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks the catalog's schema before any of its commands run.
func (c catalogCmd[T]) validate() error {
	if err := c.cat.Schema.Validate(); err != nil {
		return fmt.Errorf("%s catalog: %w", c.cat.Name, err)
	}
	return nil
}

// fetch loads and cleans the whole collection. A failed load is retried
// once when retry is set.
func (c catalogCmd[T]) fetch(ctx context.Context, a *app, criteria services.Criteria, retry bool) ([]T, source.LoadState, error) {
	loader := source.NewLoader(source.CollectionFetcher[T](a.src, c.cat.Endpoint), a.cfg.FetchTimeout, a.logger)

	res := loader.Load(ctx, criteria)
	if res.State == source.Failed && retry {
		a.logger.Warn("[%s] load failed, retrying: %v", c.cat.Name, res.Err)
		res = loader.Retry(ctx)
	}
	if res.Err != nil {
		return nil, res.State, fmt.Errorf("failed to load %s: %w", c.cat.Name, res.Err)
	}

	a.logger.Debug("[%s] request #%d: %s, %d records", c.cat.Name, res.Request.ID, res.State, len(res.Items))
	return services.Clean(a.cleaner, c.cat.Name, res.Items, c.cat.Key, c.cat.Tidy), res.State, nil
}

func (c catalogCmd[T]) list(ctx context.Context, a *app, o listOptions) error {
	criteria, err := o.criteria(c.cat.Schema)
	if err != nil {
		return err
	}

	recs, state, err := c.fetch(ctx, a, criteria, o.retry)
	if err != nil {
		return err
	}
	if state == source.Empty {
		a.insights.PrintNotice(fmt.Sprintf("No %s have been shared yet.", c.cat.Name))
		return nil
	}

	view := c.cat.View()
	view.SetSource(recs)
	a.logger.Debug("[%s] view source generation %d", c.cat.Name, view.SourceGeneration())
	view.SetCriteria(criteria)
	view.SetPage(o.page)
	if o.page != view.CurrentPage() {
		a.logger.Warn("[%s] page %d is out of range, showing page %d", c.cat.Name, o.page, view.CurrentPage())
	}

	if !o.noStats {
		a.insights.PrintCards(strings.ToUpper(c.cat.Name[:1])+c.cat.Name[1:], c.cat.Stats(view.Source()))
	}

	page := view.Page()
	rows := make([][]string, 0, len(page.Items))
	for _, rec := range page.Items {
		rows = append(rows, c.cat.Row(rec))
	}
	a.insights.PrintTable(c.cat.Header(), rows)
	a.insights.PrintPager(page.Number, page.TotalPages, len(page.Items), page.TotalItems)

	if o.csvPath != "" {
		return c.export(a, view.Derived(), o.csvPath)
	}
	return nil
}

func (c catalogCmd[T]) export(a *app, recs []T, path string) error {
	w, err := storage.NewCSVWriter(path, c.cat.Header())
	if err != nil {
		return err
	}
	n, err := writeRows(w, recs, c.cat.Row)
	if err != nil {
		return err
	}
	a.logger.Info("[%s] exported %d records to %s", c.cat.Name, n, path)
	return nil
}

// writeRows renders every record through w and closes it. A failed close
// is reported when the write itself succeeded.
func writeRows[T any](w storage.RecordWriter, recs []T, row func(T) []string) (n int, err error) {
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()

	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, row(rec))
	}
	return len(rows), w.Write(rows)
}

func (c catalogCmd[T]) show(ctx context.Context, a *app, id string) error {
	recs, _, err := c.fetch(ctx, a, services.NewCriteria(), false)
	if err != nil {
		return err
	}

	id = strings.TrimSpace(id)
	rec, ok := c.cat.Find(recs, id)
	if !ok {
		return fmt.Errorf("no %s record with id %q", c.cat.Name, id)
	}

	a.insights.PrintDetail(c.cat.Name+" / "+id, c.cat.Header(), c.cat.Row(rec))
	storage.NewRecent(a.kv, a.cfg.RecentCapacity, a.cfg.RecentTTL, a.logger).Add(c.cat.Name, id)
	return nil
}

func (c catalogCmd[T]) options(ctx context.Context, a *app, field string) error {
	if !c.cat.Schema.Has(field) {
		return checkField(field, c.cat.Schema)
	}
	category, ok := c.cat.Categories[field]
	if !ok {
		category = field
	}

	recs, _, err := c.fetch(ctx, a, services.NewCriteria(), false)
	if err != nil {
		return err
	}

	view := c.cat.View()
	view.SetSource(recs)
	a.insights.PrintOptions(field, view.Options(field, category))
	return nil
}
