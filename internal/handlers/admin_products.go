package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/store"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		slog.Error("Failed to fetch products", "error", err)
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	stats, err := h.Store.GetProductStats()
	if err != nil {
		slog.Error("Failed to fetch product stats", "error", err)
		http.Error(w, "Error fetching product stats", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "admin_products.html", map[string]interface{}{
		"Products":          products,
		"AvailableProducts": stats.Available,
		"MalePuppies":       stats.Male,
		"FemalePuppies":     stats.Female,
		"TotalValue":        stats.TotalValue,
	})
}

func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin_add_product.html", nil)
}

// productFields reads the shared add/edit form fields. Breed is normalized
// the same way the catalog filter normalizes its query parameter; rating
// falls back to 0.0 when absent or unparseable.
func productFields(r *http.Request, p *models.Product) error {
	p.Name = r.FormValue("name")
	p.Breed = models.NormalizeBreed(r.FormValue("breed"))
	p.Gender = r.FormValue("gender")
	p.Age = r.FormValue("age")
	p.Description = r.FormValue("description")

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		return err
	}
	p.Price = price

	rating, err := strconv.ParseFloat(r.FormValue("rating"), 64)
	if err != nil {
		rating = 0.0
	}
	p.Rating = rating

	p.AdditionalDetails = zipDetails(r.Form["detail_key[]"], r.Form["detail_value[]"])
	return nil
}

// zipDetails pairs the parallel detail key/value arrays into a mapping,
// silently dropping pairs where either side is empty. Keys are unique in the
// result: the first occurrence wins and later duplicates are dropped, so a
// row added by mistake cannot overwrite an earlier entry.
func zipDetails(keys, values []string) map[string]string {
	details := make(map[string]string)
	for i, key := range keys {
		if i >= len(values) {
			break
		}
		if key == "" || values[i] == "" {
			continue
		}
		if _, dup := details[key]; dup {
			continue
		}
		details[key] = values[i]
	}
	return details
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		h.addFlash(w, r, "danger", "Upload too large or malformed form.")
		http.Redirect(w, r, "/admin/product/add", http.StatusSeeOther)
		return
	}

	// New listings always start out available; the edit form has the toggle.
	product := &models.Product{IsAvailable: true}
	if err := productFields(r, product); err != nil {
		h.addFlash(w, r, "danger", "Please provide a valid price.")
		http.Redirect(w, r, "/admin/product/add", http.StatusSeeOther)
		return
	}
	if product.Name == "" {
		h.addFlash(w, r, "danger", "Name is required.")
		http.Redirect(w, r, "/admin/product/add", http.StatusSeeOther)
		return
	}

	imageURLs, err := h.Uploads.SaveAll(r.MultipartForm.File["images"])
	if err != nil {
		slog.Error("Failed to save uploaded images", "error", err)
		h.addFlash(w, r, "danger", "Error saving uploaded images.")
		http.Redirect(w, r, "/admin/product/add", http.StatusSeeOther)
		return
	}
	product.ImageURLs = imageURLs

	if err := h.Store.CreateProduct(product); err != nil {
		slog.Error("Failed to create product", "error", err)
		h.addFlash(w, r, "danger", "Error saving product to database.")
		http.Redirect(w, r, "/admin/product/add", http.StatusSeeOther)
		return
	}

	h.addFlash(w, r, "success", "Product added successfully")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	product, ok := h.productFromPath(w, r)
	if !ok {
		return
	}
	h.render(w, r, "admin_edit_product.html", map[string]interface{}{
		"Product": product,
	})
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.productFromPath(w, r)
	if !ok {
		return
	}
	editURL := "/admin/product/edit/" + strconv.FormatInt(product.ID, 10)

	if err := r.ParseMultipartForm(h.MaxUploadSize); err != nil {
		h.addFlash(w, r, "danger", "Upload too large or malformed form.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	// Same rules as create; the details mapping is fully replaced, and new
	// uploads append to the existing image list.
	if err := productFields(r, product); err != nil {
		h.addFlash(w, r, "danger", "Please provide a valid price.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}
	product.IsAvailable = r.FormValue("is_available") != ""

	newImages, err := h.Uploads.SaveAll(r.MultipartForm.File["images"])
	if err != nil {
		slog.Error("Failed to save uploaded images", "error", err)
		h.addFlash(w, r, "danger", "Error saving uploaded images.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}
	product.ImageURLs = append(product.ImageURLs, newImages...)

	if err := h.Store.UpdateProduct(product); err != nil {
		slog.Error("Failed to update product", "id", product.ID, "error", err)
		h.addFlash(w, r, "danger", "Error updating product.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	h.addFlash(w, r, "success", "Product updated successfully")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// productFromPath loads the product addressed by the {id} path parameter for
// page routes, emitting the error response when it can't.
func (h *AdminHandler) productFromPath(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		if err == store.ErrNotFound {
			http.NotFound(w, r)
			return nil, false
		}
		slog.Error("Failed to fetch product", "id", id, "error", err)
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return nil, false
	}
	return product, true
}

// DeleteProduct is a JSON endpoint. Deletion is refused with a conflict when
// historical order items still reference the product.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		var msg string
		switch err {
		case store.ErrNotFound:
			msg = "Product not found"
		case store.ErrProductInUse:
			msg = "Product has existing orders and cannot be deleted"
		default:
			slog.Error("Failed to delete product", "id", id, "error", err)
			msg = "Error deleting product"
		}
		respondWithError(w, storeErrorStatus(err), msg)
		return
	}

	respondWithSuccess(w)
}

// DeleteProductImage removes one filename from the product's image list and
// best-effort deletes the file from disk. The database update is the source
// of truth; a failed file removal is only logged.
func (h *AdminHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		if err == store.ErrNotFound {
			respondWithError(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("Failed to fetch product", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	var body struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Filename == "" {
		respondWithError(w, http.StatusBadRequest, "No filename provided")
		return
	}

	remaining := make([]string, 0, len(product.ImageURLs))
	found := false
	for _, img := range product.ImageURLs {
		if img == body.Filename && !found {
			found = true
			continue
		}
		remaining = append(remaining, img)
	}
	if !found {
		respondWithError(w, http.StatusNotFound, "Image not found on product")
		return
	}

	if err := h.Store.UpdateProductImages(product.ID, remaining); err != nil {
		slog.Error("Failed to update image list", "id", product.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Database update failed")
		return
	}

	if err := h.Uploads.Remove(body.Filename); err != nil {
		slog.Warn("Failed to remove image file from disk", "filename", body.Filename, "error", err)
	}

	respondWithSuccess(w)
}
