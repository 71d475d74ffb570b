package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/duvallglobal/getlyt/internal/models"
	"github.com/duvallglobal/getlyt/internal/repositories"
	"github.com/duvallglobal/getlyt/internal/services"
)

func seedCatalog(t *testing.T, repo *repositories.MockProductRepository) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	catalog := []models.Product{
		{
			ID: "tee-1", Name: "Statement Tee", Category: "tees",
			Price:  decimal.RequireFromString("85.00"),
			Colors: []string{"Black", "White"}, Sizes: []string{"S", "M", "L"},
			Stock: 10, Model: gorm.Model{CreatedAt: base},
		},
		{
			ID: "tee-2", Name: "Graphic Tee", Category: "tees",
			Price:  decimal.RequireFromString("95.00"),
			Colors: []string{"Navy"}, Sizes: []string{"M", "L"},
			Stock: 10, Model: gorm.Model{CreatedAt: base.Add(48 * time.Hour)},
		},
		{
			ID: "hoodie-1", Name: "Heavyweight Hoodie", Category: "hoodies",
			Price:  decimal.RequireFromString("140.00"),
			Colors: []string{"Black"}, Sizes: []string{"L", "XL"},
			Stock: 5, Model: gorm.Model{CreatedAt: base.Add(24 * time.Hour)},
		},
	}
	for i := range catalog {
		assert.NoError(t, repo.Create(&catalog[i]))
	}
}

func TestProductService_ListProducts(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	seedCatalog(t, repo)

	// No filter returns the whole catalog in featured (insertion) order.
	products, err := service.ListProducts(repositories.ProductFilter{})
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, "tee-1", products[0].ID)

	products, err = service.ListProducts(repositories.ProductFilter{Category: "tees"})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// Color matching is case-insensitive.
	products, err = service.ListProducts(repositories.ProductFilter{Color: "black"})
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = service.ListProducts(repositories.ProductFilter{Size: "XL"})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "hoodie-1", products[0].ID)

	min := decimal.RequireFromString("90.00")
	max := decimal.RequireFromString("100.00")
	products, err = service.ListProducts(repositories.ProductFilter{MinPrice: &min, MaxPrice: &max})
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "tee-2", products[0].ID)
}

func TestProductService_ListProductsSorting(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)
	seedCatalog(t, repo)

	products, err := service.ListProducts(repositories.ProductFilter{SortBy: repositories.SortPriceAsc})
	assert.NoError(t, err)
	assert.Equal(t, []string{"tee-1", "tee-2", "hoodie-1"}, productIDs(products))

	products, err = service.ListProducts(repositories.ProductFilter{SortBy: repositories.SortPriceDesc})
	assert.NoError(t, err)
	assert.Equal(t, []string{"hoodie-1", "tee-2", "tee-1"}, productIDs(products))

	products, err = service.ListProducts(repositories.ProductFilter{SortBy: repositories.SortNewest})
	assert.NoError(t, err)
	assert.Equal(t, []string{"tee-2", "hoodie-1", "tee-1"}, productIDs(products))
}

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestProductService_CRUD(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)

	product := &models.Product{
		Name:  "Logo Cap",
		Price: decimal.RequireFromString("45.00"),
		Stock: 20,
	}
	assert.NoError(t, service.CreateProduct(product))
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, models.ProductStatusActive, product.Status)

	fetched, err := service.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Logo Cap", fetched.Name)

	fetched.Stock = 15
	assert.NoError(t, service.UpdateProduct(fetched))
	fetched, err = service.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 15, fetched.Stock)

	assert.NoError(t, service.DeleteProduct(product.ID))
	_, err = service.GetProductByID(product.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = service.GetProductByID("does-not-exist")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductService_AttachImage(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo)

	product := &models.Product{
		Name:  "Logo Cap",
		Price: decimal.RequireFromString("45.00"),
	}
	assert.NoError(t, service.CreateProduct(product))

	updated, err := service.AttachImage(product.ID, "/uploads/cap.jpg")
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/cap.jpg", updated.ImageURL)

	stored, err := service.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/cap.jpg", stored.ImageURL)

	_, err = service.AttachImage("does-not-exist", "/uploads/cap.jpg")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
