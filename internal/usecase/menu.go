package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// MaxMenuResults caps the number of products returned for a search.
const MaxMenuResults = 250

const menuSampleSize = 10

// MenuSource fetches a store's structured menu.
type MenuSource interface {
	Menu(ctx context.Context, storeID string) (json.RawMessage, error)
}

// MenuUseCase serves bounded menu views.
type MenuUseCase struct {
	source MenuSource
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(source MenuSource) *MenuUseCase {
	return &MenuUseCase{source: source}
}

// Menu returns products matching search, or categories and a small product sample when
// search is blank.
func (u *MenuUseCase) Menu(ctx context.Context, storeID, search string) (*model.MenuResult, error) {
	id, err := AssertRequired("storeId", storeID)
	if err != nil {
		return nil, err
	}
	if !plainSegment(id) {
		return nil, domainErrors.Invalid("storeId", "must be a single path segment")
	}

	raw, err := u.source.Menu(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	doc := gjson.ParseBytes(raw)

	term := strings.ToLower(strings.TrimSpace(search))
	result := &model.MenuResult{
		StoreID:  id,
		Search:   term,
		Products: []model.ProductSummary{},
	}

	limit := MaxMenuResults
	if term == "" {
		limit = menuSampleSize
		result.Categories = categories(doc.Get("Categories"))
	}

	doc.Get("Products").ForEach(func(key, p gjson.Result) bool {
		product := productSummary(key, p)
		if term != "" && !matches(product, term) {
			return true
		}
		result.Matched++
		if len(result.Products) < limit {
			result.Products = append(result.Products, product)
		}
		return true
	})
	result.Truncated = result.Matched > len(result.Products)
	return result, nil
}

// plainSegment rejects ids that would change the upstream path once joined.
func plainSegment(id string) bool {
	return id != "." && id != ".." && !strings.ContainsAny(id, "/\\")
}

func productSummary(key, p gjson.Result) model.ProductSummary {
	code := p.Get("Code").String()
	if code == "" && key.Type == gjson.String {
		code = key.Str
	}
	return model.ProductSummary{
		Code:        code,
		Name:        p.Get("Name").String(),
		Description: p.Get("Description").String(),
		ProductType: p.Get("ProductType").String(),
	}
}

func matches(p model.ProductSummary, term string) bool {
	haystack := strings.ToLower(p.Code + " " + p.Name + " " + p.Description)
	return strings.Contains(haystack, term)
}

func categories(node gjson.Result) []model.CategorySummary {
	out := []model.CategorySummary{}
	node.ForEach(func(key, c gjson.Result) bool {
		code := c.Get("Code").String()
		if code == "" && key.Type == gjson.String {
			code = key.Str
		}
		name := c.Get("Name").String()
		if name == "" {
			name = code
		}
		out = append(out, model.CategorySummary{Code: code, Name: name})
		return true
	})
	return out
}
