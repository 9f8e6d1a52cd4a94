package store

import (
	"testing"

	"github.com/shalliecode/volydog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{
		Name:        "Biscuit",
		Breed:       "Golden Retriever",
		Gender:      "Male",
		Age:         "8 weeks",
		Price:       1200,
		Description: "A very good boy.",
		ImageURLs:   []string{"uploads/biscuit_1.jpg", "uploads/biscuit_2.jpg"},
		AdditionalDetails: map[string]string{
			"Vaccinated": "Yes",
			"Microchip":  "Yes",
		},
		Rating:      4.5,
		IsAvailable: true,
	}
	require.NoError(t, s.CreateProduct(p))
	require.NotZero(t, p.ID)

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", got.Name)
	assert.Equal(t, []string{"uploads/biscuit_1.jpg", "uploads/biscuit_2.jpg"}, got.ImageURLs)
	assert.Equal(t, map[string]string{"Vaccinated": "Yes", "Microchip": "Yes"}, got.AdditionalDetails)
	assert.Equal(t, 4.5, got.Rating)
	assert.True(t, got.IsAvailable)
}

func TestProductNilSlicesStoredAsEmpty(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Plain", Price: 100, IsAvailable: true}
	require.NoError(t, s.CreateProduct(p))

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.ImageURLs)
	assert.Empty(t, got.ImageURLs)
	assert.NotNil(t, got.AdditionalDetails)
	assert.Empty(t, got.AdditionalDetails)
}

func TestGetProductByIDMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetProductByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Biscuit", Price: 1200, IsAvailable: true}
	require.NoError(t, s.CreateProduct(p))

	p.Name = "Sir Biscuit"
	p.Price = 1350
	p.IsAvailable = false
	p.AdditionalDetails = map[string]string{"Temperament": "Calm"}
	require.NoError(t, s.UpdateProduct(p))

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sir Biscuit", got.Name)
	assert.Equal(t, 1350.0, got.Price)
	assert.False(t, got.IsAvailable)
	assert.Equal(t, map[string]string{"Temperament": "Calm"}, got.AdditionalDetails)
}

func TestUpdateProductMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateProduct(&models.Product{ID: 99, Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductImages(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Biscuit", Price: 1200, ImageURLs: []string{"uploads/a.jpg", "uploads/b.jpg"}}
	require.NoError(t, s.CreateProduct(p))

	require.NoError(t, s.UpdateProductImages(p.ID, []string{"uploads/b.jpg"}))

	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/b.jpg"}, got.ImageURLs)

	require.NoError(t, s.UpdateProductImages(p.ID, nil))
	got, err = s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ImageURLs)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Biscuit", Price: 1200}
	require.NoError(t, s.CreateProduct(p))

	require.NoError(t, s.DeleteProduct(p.ID))

	_, err := s.GetProductByID(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteProduct(p.ID), ErrNotFound)
}

func TestDeleteProductBlockedByOrders(t *testing.T) {
	s := newTestStore(t)

	p := &models.Product{Name: "Biscuit", Price: 1200}
	require.NoError(t, s.CreateProduct(p))

	order := &models.Order{
		OrderNumber:   "VELY20250101120000",
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		PaymentStatus: models.PaymentPending,
		Status:        models.OrderPending,
		TotalAmount:   1200,
		Items:         []models.OrderItem{{ProductID: p.ID, Quantity: 1, Price: 1200}},
	}
	require.NoError(t, s.CreateOrder(order))

	assert.ErrorIs(t, s.DeleteProduct(p.ID), ErrProductInUse)

	// The product must still be there.
	got, err := s.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Biscuit", got.Name)
}

func TestAvailabilityFilters(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateProduct(&models.Product{Name: "Available Pup", Breed: "Poodle", Price: 900, IsAvailable: true}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "Sold Pup", Breed: "Poodle", Price: 900, IsAvailable: false}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "Breedless", Price: 100, IsAvailable: true}))

	available, err := s.GetAvailableProducts()
	require.NoError(t, err)
	assert.Len(t, available, 2)

	puppies, err := s.GetAvailablePuppies()
	require.NoError(t, err)
	require.Len(t, puppies, 1)
	assert.Equal(t, "Available Pup", puppies[0].Name)

	poodles, err := s.GetAvailableProductsByBreed("Poodle")
	require.NoError(t, err)
	require.Len(t, poodles, 1)
	assert.Equal(t, "Available Pup", poodles[0].Name)

	all, err := s.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListBreedsNormalizesAndDeduplicates(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateProduct(&models.Product{Name: "A", Breed: "golden retriever", Price: 1}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "B", Breed: "Golden Retriever", Price: 1}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "C", Breed: "POODLE", Price: 1}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "D", Price: 1}))

	breeds, err := s.ListBreeds()
	require.NoError(t, err)
	assert.Equal(t, []string{"Golden Retriever", "Poodle"}, breeds)
}

func TestCountProducts(t *testing.T) {
	s := newTestStore(t)

	n, err := s.CountProducts()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, s.CreateProduct(&models.Product{Name: "A", Price: 1}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "B", Price: 1}))

	n, err = s.CountProducts()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGetProductStats(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateProduct(&models.Product{Name: "A", Gender: "Male", Price: 100, IsAvailable: true}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "B", Gender: "female", Price: 200, IsAvailable: true}))
	require.NoError(t, s.CreateProduct(&models.Product{Name: "C", Gender: "M", Price: 300, IsAvailable: false}))

	stats, err := s.GetProductStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Available)
	assert.Equal(t, 2, stats.Male)
	assert.Equal(t, 1, stats.Female)
	assert.Equal(t, 600.0, stats.TotalValue)
}
