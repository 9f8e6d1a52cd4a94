package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shalliecode/volydog/internal/models"
)

const productColumns = `id, name, breed, gender, age, price, description, image_urls, additional_details, rating, is_available, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var imagesJSON, detailsJSON string
	err := row.Scan(&p.ID, &p.Name, &p.Breed, &p.Gender, &p.Age, &p.Price, &p.Description,
		&imagesJSON, &detailsJSON, &p.Rating, &p.IsAvailable, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(imagesJSON), &p.ImageURLs); err != nil {
		return nil, fmt.Errorf("failed to decode image list for product %d: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(detailsJSON), &p.AdditionalDetails); err != nil {
		return nil, fmt.Errorf("failed to decode details for product %d: %w", p.ID, err)
	}
	return &p, nil
}

func encodeProductJSON(p *models.Product) (images, details string, err error) {
	urls := p.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	imagesBytes, err := json.Marshal(urls)
	if err != nil {
		return "", "", err
	}
	det := p.AdditionalDetails
	if det == nil {
		det = map[string]string{}
	}
	detailsBytes, err := json.Marshal(det)
	if err != nil {
		return "", "", err
	}
	return string(imagesBytes), string(detailsBytes), nil
}

func (s *Store) CreateProduct(p *models.Product) error {
	images, details, err := encodeProductJSON(p)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (name, breed, gender, age, price, description, image_urls, additional_details, rating, is_available, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, p.Name, p.Breed, p.Gender, p.Age, p.Price, p.Description, images, details, p.Rating, p.IsAvailable)
	if err != nil {
		return err
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (s *Store) UpdateProduct(p *models.Product) error {
	images, details, err := encodeProductJSON(p)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET name = ?, breed = ?, gender = ?, age = ?, price = ?, description = ?,
		    image_urls = ?, additional_details = ?, rating = ?, is_available = ?
		WHERE id = ?
	`
	res, err := s.DB.Exec(query, p.Name, p.Breed, p.Gender, p.Age, p.Price, p.Description, images, details, p.Rating, p.IsAvailable, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProductImages replaces the stored image list. The list is the source
// of truth for which upload files belong to the product.
func (s *Store) UpdateProductImages(id int64, imageURLs []string) error {
	if imageURLs == nil {
		imageURLs = []string{}
	}
	images, err := json.Marshal(imageURLs)
	if err != nil {
		return err
	}
	res, err := s.DB.Exec(`UPDATE products SET image_urls = ? WHERE id = ?`, string(images), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product. Products referenced by historical order
// items are never deleted; callers get ErrProductInUse instead.
func (s *Store) DeleteProduct(id int64) error {
	var refs int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM order_items WHERE product_id = ?`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}

	res, err := s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) GetProductByID(id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	p, err := scanProduct(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Store) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetAvailableProducts returns every available product, newest first.
func (s *Store) GetAvailableProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products WHERE is_available = 1 ORDER BY created_at DESC`)
}

// GetAvailableProductsByBreed filters available products by an exact,
// already-normalized breed value.
func (s *Store) GetAvailableProductsByBreed(breed string) ([]models.Product, error) {
	return s.queryProducts(`SELECT `+productColumns+` FROM products WHERE is_available = 1 AND breed = ? ORDER BY created_at DESC`, breed)
}

// GetAvailablePuppies returns available products that have a breed assigned,
// the default listing on the browse page.
func (s *Store) GetAvailablePuppies() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products WHERE is_available = 1 AND breed != '' ORDER BY created_at DESC`)
}

// GetAllProducts returns every product including unavailable ones, for the
// admin back-office.
func (s *Store) GetAllProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
}

// ListBreeds returns the stored breed values across ALL products, normalized
// and de-duplicated, in order of first occurrence. Used for the navigation
// filter and as autocomplete suggestions in the admin product form.
func (s *Store) ListBreeds() ([]string, error) {
	rows, err := s.DB.Query(`SELECT breed FROM products WHERE breed != '' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breeds []string
	seen := make(map[string]bool)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		b := models.NormalizeBreed(raw)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		breeds = append(breeds, b)
	}
	return breeds, rows.Err()
}

func (s *Store) CountProducts() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

// ProductStats back the admin products page header.
type ProductStats struct {
	Available  int
	Male       int
	Female     int
	TotalValue float64
}

func (s *Store) GetProductStats() (*ProductStats, error) {
	stats := &ProductStats{}
	err := s.DB.QueryRow(`
		SELECT
			COALESCE(SUM(is_available), 0),
			COALESCE(SUM(CASE WHEN gender IN ('Male', 'male', 'M', 'm') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN gender IN ('Female', 'female', 'F', 'f') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(price), 0)
		FROM products
	`).Scan(&stats.Available, &stats.Male, &stats.Female, &stats.TotalValue)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
