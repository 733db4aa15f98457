package services_test

import (
	"testing"
	"time"

	"github.com/mahasultan/resouq-backend/models"
	"github.com/mahasultan/resouq-backend/services"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func day(n int) time.Time {
	return time.Date(2024, 6, n, 0, 0, 0, 0, time.UTC)
}

var testCategories = []models.Category{
	{ID: "1", Name: "Clothing"},
	{ID: "2", Name: "T-Shirts", ParentID: strPtr("1")},
	{ID: "14", Name: "Shoes"},
}

func TestFilterProducts_CategoryIncludesChildren(t *testing.T) {
	products := []models.Product{
		{ID: "a", CategoryID: "1"},
		{ID: "b", CategoryID: "2"},
		{ID: "c", CategoryID: "14"},
	}

	out := services.FilterProducts(products, models.FilterOptions{CategoryID: "1"}, testCategories)

	ids := productIDs(out)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFilterProducts_TextQueryMatchesCategoryName(t *testing.T) {
	products := []models.Product{
		{ID: "a", Name: "Vintage jacket", CategoryID: "1"},
		{ID: "b", Name: "Casual top", CategoryID: "2"},
		{ID: "c", Name: "Runners", CategoryID: "14"},
	}

	// "shirt" appears only in category name "T-Shirts"
	out := services.FilterProducts(products, models.FilterOptions{Query: "shirt"}, testCategories)
	assert.Equal(t, []string{"b"}, productIDs(out))

	// case-insensitive name match
	out = services.FilterProducts(products, models.FilterOptions{Query: "VINTAGE"}, testCategories)
	assert.Equal(t, []string{"a"}, productIDs(out))

	// empty query matches all
	out = services.FilterProducts(products, models.FilterOptions{}, testCategories)
	assert.Len(t, out, 3)
}

func TestFilterProducts_AttributeAndPriceFilters(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 50, Condition: "new", Size: "M", Gender: "women", CategoryID: "1"},
		{ID: "b", Price: 150, Condition: "used", Size: "M", Gender: "women", CategoryID: "1"},
		{ID: "c", Price: 250, Condition: "new", Size: "L", Gender: "men", CategoryID: "1"},
	}

	out := services.FilterProducts(products, models.FilterOptions{Condition: "new"}, testCategories)
	assert.Equal(t, []string{"a", "c"}, productIDs(out))

	out = services.FilterProducts(products, models.FilterOptions{Size: "M", Gender: "women"}, testCategories)
	assert.Equal(t, []string{"a", "b"}, productIDs(out))

	// inclusive bounds, independently optional
	out = services.FilterProducts(products, models.FilterOptions{MinPrice: floatPtr(150)}, testCategories)
	assert.Equal(t, []string{"b", "c"}, productIDs(out))

	out = services.FilterProducts(products, models.FilterOptions{MinPrice: floatPtr(50), MaxPrice: floatPtr(150)}, testCategories)
	assert.Equal(t, []string{"a", "b"}, productIDs(out))
}

func TestSortProducts(t *testing.T) {
	products := []models.Product{
		{ID: "a", Price: 30, CreatedAt: day(1)},
		{ID: "b", Price: 10, CreatedAt: day(3)},
		{ID: "c", Price: 20, CreatedAt: day(2)},
	}

	assert.Equal(t, []string{"b", "c", "a"}, productIDs(services.SortProducts(products, models.SortPriceAsc)))
	assert.Equal(t, []string{"a", "c", "b"}, productIDs(services.SortProducts(products, models.SortPriceDesc)))
	assert.Equal(t, []string{"b", "c", "a"}, productIDs(services.SortProducts(products, models.SortNewest)))
	// unknown key keeps input order
	assert.Equal(t, []string{"a", "b", "c"}, productIDs(services.SortProducts(products, "bogus")))
}

func TestSortByAvailabilityThenDate(t *testing.T) {
	products := []models.Product{
		{ID: "A", IsSold: true, CreatedAt: day(1)},
		{ID: "B", CreatedAt: day(2)},
		{ID: "C", CreatedAt: day(3)},
	}

	out := services.SortByAvailabilityThenDate(products)

	assert.Equal(t, []string{"C", "B", "A"}, productIDs(out))
}

func TestTopSellerProducts(t *testing.T) {
	products := []models.Product{
		{ID: "a", SellerID: "s1"},
		{ID: "b", SellerID: "s2"},
		{ID: "c", SellerID: "s1", IsSold: true},
		{ID: "d", SellerID: "s3"},
	}
	summaries := []models.SellerRatingSummary{
		{SellerID: "s1", Average: 4.9},
		{SellerID: "s2", Average: 4.5},
	}

	out := services.TopSellerProducts(products, summaries, services.TopSellerThreshold)

	// s2 below threshold, s3 has no summary, sold items excluded
	assert.Equal(t, []string{"a"}, productIDs(out))
}

func TestSimilarAndSameSellerItems(t *testing.T) {
	target := models.Product{ID: "x", CategoryID: "2", SellerID: "s1"}
	catalog := []models.Product{
		target,
		{ID: "a", CategoryID: "2", SellerID: "s2"},
		{ID: "b", CategoryID: "2", SellerID: "s1", IsSold: true},
		{ID: "c", CategoryID: "14", SellerID: "s1"},
		{ID: "d", CategoryID: "2", SellerID: "s3"},
	}

	similar := services.SimilarItems(target, catalog, 5)
	assert.Equal(t, []string{"a", "d"}, productIDs(similar))

	sameSeller := services.SameSellerItems(target, catalog, 5)
	assert.Equal(t, []string{"c"}, productIDs(sameSeller))
}

func TestSimilarItems_RespectsLimit(t *testing.T) {
	target := models.Product{ID: "x", CategoryID: "1"}
	var catalog []models.Product
	for _, id := range []string{"a", "b", "c", "d"} {
		catalog = append(catalog, models.Product{ID: id, CategoryID: "1"})
	}

	out := services.SimilarItems(target, catalog, 2)

	assert.Equal(t, []string{"a", "b"}, productIDs(out))
}

func TestCategoryFrequency(t *testing.T) {
	products := []models.Product{
		{ID: "a", CategoryID: "2"},
		{ID: "b", CategoryID: "2"},
		{ID: "c", CategoryID: "1"},
	}

	out := services.CategoryFrequency(products, testCategories)

	assert.Equal(t, []models.CategoryCount{
		{Label: "T-Shirts", ID: "2", Count: 2},
		{Label: "Clothing", ID: "1", Count: 1},
	}, out)
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
