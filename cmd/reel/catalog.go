package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/domain"
)

// View prints the details of one title and counts a view
func (r *Runner) View(ctx context.Context, cmd *cli.Command) error {
	kind, id, err := kindAndID(cmd)
	if err != nil {
		return err
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	details, err := r.catalog.View(ctx, kind, id)
	if err != nil {
		return err
	}

	if cmd.Bool("open") {
		trailer, _ := details.Trailer()
		if err := r.launcher.Launch(trailer.URL()); err != nil {
			if errors.Is(err, adapter.ErrNoTrailer) {
				return fmt.Errorf("%s has no trailer", details.Name)
			}
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(details, cmd.Bool("pretty"))
	}

	featured, err := r.curation.IsFeatured(kind, id)
	if err != nil {
		r.logger.Warn("failed to check featured state", "kind", kind, "id", id, "error", err)
	}

	header := details.Name + yearSuffix(details.Title)
	if featured {
		header = "★ " + header
	}
	r.writePlainHeader(header)

	meta := []string{kind.Label()}
	if rt := details.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	meta = append(meta, "★ "+details.Rating())
	r.writePlain("%s\n", strings.Join(meta, " · "))
	if genres := details.GenreNames(); len(genres) > 0 {
		r.writePlain("Genres:    %s\n", strings.Join(genres, ", "))
	}
	if len(details.Countries) > 0 {
		names := make([]string, len(details.Countries))
		for i, c := range details.Countries {
			names[i] = c.Name
		}
		r.writePlain("Countries: %s\n", strings.Join(names, ", "))
	}
	if details.Overview != "" {
		r.writePlain("\n%s\n", details.Overview)
	}

	if len(details.Cast) > 0 {
		r.writePlain("\nCast\n")
		for i, c := range details.Cast {
			if i == 8 {
				break
			}
			if c.Character != "" {
				r.writePlain("  %s as %s\n", c.Name, c.Character)
			} else {
				r.writePlain("  %s\n", c.Name)
			}
		}
	}

	if trailer, ok := details.Trailer(); ok {
		r.writePlain("\nTrailer: %s\n", trailer.URL())
	}
	return nil
}

// Search queries the catalog, across both kinds unless --kind is set
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return errors.New("search query is required")
	}
	kind, err := optionalKind(cmd)
	if err != nil {
		return err
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	page := max(cmd.Int("page"), 1)

	var result *domain.Page
	if kind == nil {
		result, err = r.catalog.SearchAll(ctx, query, page)
	} else {
		result, err = r.catalog.Browse(ctx, *kind, domain.DiscoverFilter{Page: page}, query)
	}
	if err != nil {
		return err
	}

	return r.writePage(cmd, fmt.Sprintf("Search: %s", query), result)
}

// Discover browses one kind by genre and origin country
func (r *Runner) Discover(ctx context.Context, cmd *cli.Command) error {
	kind, err := kindOrFilm(cmd)
	if err != nil {
		return err
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := domain.DiscoverFilter{
		Page:          max(cmd.Int("page"), 1),
		Genre:         cmd.String("genre"),
		OriginCountry: strings.ToUpper(cmd.String("country")),
		SortBy:        cmd.String("sort"),
	}
	if filter.SortBy == "" {
		filter.SortBy = domain.DefaultSort
	}

	result, err := r.catalog.Browse(ctx, kind, filter, "")
	if err != nil {
		return err
	}
	return r.writePage(cmd, "Discover "+kind.Label(), result)
}

// Trending lists the titles trending over a day or a week
func (r *Runner) Trending(ctx context.Context, cmd *cli.Command) error {
	kind, err := kindOrFilm(cmd)
	if err != nil {
		return err
	}

	window := domain.TimeWindow(strings.ToLower(cmd.String("window")))
	if window != domain.WindowDay && window != domain.WindowWeek {
		return fmt.Errorf("invalid window %q: must be day or week", window)
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	titles, err := r.catalog.Trending(ctx, kind, window)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(titles, cmd.Bool("pretty"))
	}
	r.writePlainHeader(fmt.Sprintf("Trending %s (%s)", kind.Label(), window))
	r.writeTitles(titles)
	return nil
}

// Genres lists the catalog genres for one kind
func (r *Runner) Genres(ctx context.Context, cmd *cli.Command) error {
	kind, err := kindOrFilm(cmd)
	if err != nil {
		return err
	}
	if err := r.requireCatalog(); err != nil {
		return err
	}

	genres, err := r.catalog.Genres(ctx, kind)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}
	r.writePlainHeader(kind.Label() + " genres")
	for _, g := range genres {
		r.writePlain("%6d  %s\n", g.ID, g.Name)
	}
	return nil
}

func (r *Runner) writePage(cmd *cli.Command, title string, page *domain.Page) error {
	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	if len(page.Results) == 0 {
		return r.writePlain("No results\n")
	}
	r.writePlainHeader(fmt.Sprintf("%s (page %d of %d)", title, page.Page, max(page.TotalPages, 1)))
	r.writeTitles(page.Results)
	return nil
}

func (r *Runner) writeTitles(titles []domain.Title) {
	for _, t := range titles {
		r.writePlain("%-7s %8d  %s%s  ★ %s\n", t.Kind, t.ID, t.Name, yearSuffix(t), t.Rating())
	}
}

// kindOrFilm parses --kind, defaulting to films
func kindOrFilm(cmd *cli.Command) (domain.Kind, error) {
	kind, err := optionalKind(cmd)
	if err != nil {
		return "", err
	}
	if kind == nil {
		return domain.KindFilm, nil
	}
	return *kind, nil
}
