package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cooklang/cookcli-sub000/internal/provider/webrecipe"
)

type RecipeFetcher interface {
	Fetch(ctx context.Context, url string) (webrecipe.Recipe, []byte, error)
}

type ImportOptions struct {
	// SkipConversion returns the extracted text as-is instead of Cooklang.
	SkipConversion bool
}

type ImportResult struct {
	Recipe webrecipe.Recipe `json:"recipe"`
	Text   string           `json:"text"`
}

func ImportRecipe(ctx context.Context, fetcher RecipeFetcher, rawURL string, opts ImportOptions) (*ImportResult, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid recipe url %q", rawURL)
	}
	recipe, _, err := fetcher.Fetch(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", u.Host, err)
	}
	if len(recipe.Ingredients) == 0 && len(recipe.Instructions) == 0 {
		return nil, fmt.Errorf("import %s: %w", u.Host, webrecipe.ErrNoRecipe)
	}

	res := &ImportResult{Recipe: recipe}
	if opts.SkipConversion {
		res.Text = recipe.Plain()
		return res, nil
	}
	res.Text, err = recipe.Cooklang()
	if err != nil {
		return nil, fmt.Errorf("convert recipe: %w", err)
	}
	return res, nil
}
