package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/reel/internal/domain"
)

// FeaturedAdd fetches a title from the catalog and adds it to the curated set.
func (r *Runner) FeaturedAdd(ctx context.Context, cmd *cli.Command) error {
	kind, id, err := kindAndID(cmd)
	if err != nil {
		return err
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}
	if !r.store.Persistent() {
		return errors.New("curation store is unavailable, check store.backend")
	}

	r.logger.Info("featuring title", "kind", kind, "id", id)

	added, err := r.curation.Add(ctx, kind, id)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s %d", kind, id)
	if entry, ok, err := r.store.Get(id, kind); err == nil && ok {
		name = entry.Payload.Name
	}
	if !added {
		return r.writePlain("%s is already featured\n", name)
	}
	return r.writePlain("✓ Featured %s\n", name)
}

// FeaturedRemove drops a title from the curated set. Removing an absent title succeeds.
func (r *Runner) FeaturedRemove(ctx context.Context, cmd *cli.Command) error {
	kind, id, err := kindAndID(cmd)
	if err != nil {
		return err
	}

	if err := r.curation.Remove(kind, id); err != nil {
		return err
	}
	return r.writePlain("✓ Removed %s %d\n", kind, id)
}

// FeaturedList prints the curated set, optionally of one kind or fuzzy filtered.
func (r *Runner) FeaturedList(ctx context.Context, cmd *cli.Command) error {
	kind, err := optionalKind(cmd)
	if err != nil {
		return err
	}

	results, err := r.curation.Filter(cmd.String("filter"))
	if err != nil {
		return err
	}

	entries := make([]domain.CuratedEntry, 0, len(results))
	for _, res := range results {
		if kind != nil && res.Entry.Kind != *kind {
			continue
		}
		entries = append(entries, res.Entry)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		return r.writePlain("No featured titles\n")
	}

	r.writePlainHeader(fmt.Sprintf("Featured (%d)", len(entries)))
	for _, e := range entries {
		r.writePlain("%-7s %8d  %s%s\n", e.Kind, e.ID, e.Payload.Name, yearSuffix(e.Payload.Title))
	}
	return nil
}

// Stats prints the dashboard counters.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	stats, err := r.curation.Stats()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, cmd.Bool("pretty"))
	}

	updated := "never"
	if !stats.LastUpdated.IsZero() {
		updated = stats.LastUpdated.Local().Format("2006-01-02 15:04")
	}

	r.writePlainHeader("Stats")
	r.writePlain("Films:        %d\n", stats.TotalFilms)
	r.writePlain("Series:       %d\n", stats.TotalSeries)
	r.writePlain("Total views:  %d\n", stats.TotalViews)
	return r.writePlain("Last updated: %s\n", updated)
}

func yearSuffix(t domain.Title) string {
	if y := t.Year(); y > 0 {
		return fmt.Sprintf(" (%d)", y)
	}
	return ""
}
