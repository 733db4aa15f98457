package services

import (
	"sort"
	"strings"

	"github.com/mahasultan/resouq-backend/models"
)

// TopSellerThreshold is the minimum average rating for a seller's listings
// to appear in the top-sellers feed.
const TopSellerThreshold = 4.8

const relatedItemsLimit = 5

// FilterProducts derives a view of products matching opts. Filters are
// AND-combined; zero-valued options impose no constraint. The category
// filter matches the requested category or any of its direct children
// (the hierarchy is one level deep).
func FilterProducts(products []models.Product, opts models.FilterOptions, categories []models.Category) []models.Product {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	query := strings.ToLower(strings.TrimSpace(opts.Query))

	var out []models.Product
	for _, p := range products {
		if opts.CategoryID != "" && !categoryMatches(p.CategoryID, opts.CategoryID, byID) {
			continue
		}
		if query != "" && !productMatchesQuery(p, query, byID) {
			continue
		}
		if opts.Condition != "" && p.Condition != opts.Condition {
			continue
		}
		if opts.Size != "" && p.Size != opts.Size {
			continue
		}
		if opts.Gender != "" && p.Gender != opts.Gender {
			continue
		}
		if opts.MinPrice != nil && p.Price < *opts.MinPrice {
			continue
		}
		if opts.MaxPrice != nil && p.Price > *opts.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

func categoryMatches(productCategoryID, wantedID string, byID map[string]models.Category) bool {
	if productCategoryID == wantedID {
		return true
	}
	if c, ok := byID[productCategoryID]; ok && c.ParentID != nil && *c.ParentID == wantedID {
		return true
	}
	return false
}

func productMatchesQuery(p models.Product, query string, byID map[string]models.Category) bool {
	fields := []string{p.Name, p.Gender, p.Condition, p.Size}
	if c, ok := byID[p.CategoryID]; ok {
		fields = append(fields, c.Name)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// SortProducts orders a copy of products by the given sort key. An empty or
// unrecognized key keeps the input order.
func SortProducts(products []models.Product, key string) []models.Product {
	out := append([]models.Product(nil), products...)
	switch key {
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case models.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// SortByAvailabilityThenDate is the canonical feed ordering: unsold listings
// first, newest first within each group.
func SortByAvailabilityThenDate(products []models.Product) []models.Product {
	out := append([]models.Product(nil), products...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsSold != out[j].IsSold {
			return !out[i].IsSold
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// TopSellerProducts keeps unsold listings whose seller's average rating meets
// the threshold. Sellers with no rating summary are not top sellers.
func TopSellerProducts(products []models.Product, summaries []models.SellerRatingSummary, threshold float64) []models.Product {
	averages := make(map[string]float64, len(summaries))
	for _, s := range summaries {
		averages[s.SellerID] = s.Average
	}

	var out []models.Product
	for _, p := range products {
		if p.IsSold {
			continue
		}
		if avg, ok := averages[p.SellerID]; ok && avg >= threshold {
			out = append(out, p)
		}
	}
	return out
}

// SimilarItems returns up to limit unsold listings from the same category as
// product, excluding the product itself, in catalog order.
func SimilarItems(product models.Product, catalog []models.Product, limit int) []models.Product {
	return relatedItems(product, catalog, limit, func(p models.Product) bool {
		return p.CategoryID == product.CategoryID
	})
}

// SameSellerItems returns up to limit other unsold listings from the
// product's seller, in catalog order.
func SameSellerItems(product models.Product, catalog []models.Product, limit int) []models.Product {
	return relatedItems(product, catalog, limit, func(p models.Product) bool {
		return p.SellerID == product.SellerID
	})
}

func relatedItems(product models.Product, catalog []models.Product, limit int, match func(models.Product) bool) []models.Product {
	if limit <= 0 {
		limit = relatedItemsLimit
	}
	var out []models.Product
	for _, p := range catalog {
		if p.ID == product.ID || p.IsSold || !match(p) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// CategoryFrequency counts products per category and returns the counts in
// descending order. Categories with no products are omitted.
func CategoryFrequency(products []models.Product, categories []models.Category) []models.CategoryCount {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.CategoryID]++
	}

	var out []models.CategoryCount
	for _, c := range categories {
		if n := counts[c.ID]; n > 0 {
			out = append(out, models.CategoryCount{Label: c.Name, ID: c.ID, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
