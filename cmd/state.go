package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"exchange-catalog/models"
	"exchange-catalog/services"
	"exchange-catalog/storage"
)

const timeLayout = "2006-01-02 15:04"

func (a *app) warnIfNoStorage() {
	if !a.storageAvailable() {
		a.insights.PrintNotice("Local storage is unavailable; nothing will be saved.")
	}
}

func newWishlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the accommodation wishlist",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle <accommodation-id>",
			Short: "Add an accommodation to the wishlist, or remove it if present",
			Args:  cobra.ExactArgs(1),
			Run: func(_ *cobra.Command, args []string) {
				a.warnIfNoStorage()
				w := storage.NewWishlist(a.kv, a.cfg.WishlistCapacity, a.logger)
				id := strings.TrimSpace(args[0])
				if w.Toggle(id) {
					fmt.Fprintf(a.out, "Added %s to the wishlist.\n", id)
				} else {
					fmt.Fprintf(a.out, "Removed %s from the wishlist.\n", id)
				}
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show wishlisted accommodations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ids := storage.NewWishlist(a.kv, a.cfg.WishlistCapacity, a.logger).IDs()
				if len(ids) == 0 {
					a.insights.PrintNotice("Your wishlist is empty.")
					return nil
				}

				acc := catalogCmd[models.Accommodation]{services.AccommodationCatalog}
				recs, _, err := acc.fetch(cmd.Context(), a, services.NewCriteria(), false)
				if err != nil {
					a.logger.Warn("[wishlist] %v; showing ids only", err)
					a.insights.PrintTable([]string{"ID"}, idRows(ids))
					return nil
				}

				var rows [][]string
				for _, id := range ids {
					if rec, ok := acc.cat.Find(recs, id); ok {
						rows = append(rows, acc.cat.Row(rec))
					} else {
						a.logger.Debug("[wishlist] %s is no longer listed", id)
					}
				}
				a.insights.PrintTable(acc.cat.Header(), rows)
				if missing := len(ids) - len(rows); missing > 0 {
					a.insights.PrintNotice(fmt.Sprintf("%d saved accommodation(s) are no longer listed.", missing))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every wishlisted accommodation",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				storage.NewWishlist(a.kv, a.cfg.WishlistCapacity, a.logger).Clear()
				fmt.Fprintln(a.out, "Wishlist cleared.")
			},
		},
	)
	return cmd
}

func newBookmarksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage bookmarked records of any kind",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle <kind> <id>",
			Short: "Bookmark a record, or remove the bookmark if present",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				if _, err := lookupCatalog(args[0]); err != nil {
					return err
				}
				a.warnIfNoStorage()
				key := strings.ToLower(args[0]) + "/" + strings.TrimSpace(args[1])
				b := storage.NewBookmarks(a.kv, a.cfg.BookmarkCapacity, a.logger)
				if b.Toggle(key) {
					fmt.Fprintf(a.out, "Bookmarked %s.\n", key)
				} else {
					fmt.Fprintf(a.out, "Removed bookmark %s.\n", key)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List bookmarks, oldest first",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				keys := storage.NewBookmarks(a.kv, a.cfg.BookmarkCapacity, a.logger).IDs()
				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					kind, id, _ := strings.Cut(k, "/")
					rows = append(rows, []string{kind, id})
				}
				if len(rows) == 0 {
					a.insights.PrintNotice("No bookmarks yet.")
					return
				}
				a.insights.PrintTable([]string{"Kind", "ID"}, rows)
			},
		},
	)
	return cmd
}

func newRecentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently viewed records, newest first",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			entries := storage.NewRecent(a.kv, a.cfg.RecentCapacity, a.cfg.RecentTTL, a.logger).List()
			if len(entries) == 0 {
				a.insights.PrintNotice("Nothing viewed recently.")
				return
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Kind, e.ID, e.ViewedAt.Local().Format(timeLayout)})
			}
			a.insights.PrintTable([]string{"Kind", "ID", "Viewed"}, rows)
		},
	}
}

func newDraftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Save, show or discard form drafts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "save <form> key=value...",
			Short: "Save a draft for a form",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				fields := make(map[string]string, len(args)-1)
				for _, kv := range args[1:] {
					k, v, ok := strings.Cut(kv, "=")
					if !ok || strings.TrimSpace(k) == "" {
						return fmt.Errorf("%q is not in key=value form", kv)
					}
					fields[strings.TrimSpace(k)] = v
				}
				a.warnIfNoStorage()
				if err := storage.NewDrafts(a.kv).Save(args[0], fields); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Saved draft %q (%d fields).\n", args[0], len(fields))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <form>",
			Short: "Show the saved draft for a form",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				var fields map[string]any
				ok, err := storage.NewDrafts(a.kv).Load(args[0], &fields)
				if err != nil {
					return err
				}
				if !ok {
					a.insights.PrintNotice(fmt.Sprintf("No draft saved for %q.", args[0]))
					return nil
				}
				keys := make([]string, 0, len(fields))
				for k := range fields {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					rows = append(rows, []string{k, fmt.Sprint(fields[k])})
				}
				a.insights.PrintTable([]string{"Field", "Value"}, rows)
				return nil
			},
		},
		&cobra.Command{
			Use:   "discard <form>",
			Short: "Discard the saved draft for a form",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if err := storage.NewDrafts(a.kv).Discard(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Discarded draft %q.\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func idRows(ids []string) [][]string {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{id}
	}
	return rows
}
