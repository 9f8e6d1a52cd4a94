package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/store"
)

type CatalogHandler struct {
	*Base
}

func (h *CatalogHandler) Index(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAvailableProducts()
	if err != nil {
		slog.Error("Failed to fetch products", "error", err)
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	h.render(w, r, "home.html", map[string]interface{}{
		"Products": products,
	})
}

// Puppies lists available products with a breed, optionally filtered on an
// exact breed. The query parameter is normalized server-side so
// "?breed=golden retriever" matches the stored "Golden Retriever".
func (h *CatalogHandler) Puppies(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.Product
		err      error
	)
	breed := models.NormalizeBreed(r.URL.Query().Get("breed"))
	if breed != "" {
		products, err = h.Store.GetAvailableProductsByBreed(breed)
	} else {
		products, err = h.Store.GetAvailablePuppies()
	}
	if err != nil {
		slog.Error("Failed to fetch products", "error", err)
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "products.html", map[string]interface{}{
		"Products":      products,
		"SelectedBreed": breed,
	})
}

func (h *CatalogHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		if err == store.ErrNotFound {
			http.NotFound(w, r)
			return
		}
		slog.Error("Failed to fetch product", "id", id, "error", err)
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "product_detail.html", map[string]interface{}{
		"Product": product,
	})
}

func (h *CatalogHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about.html", nil)
}

func (h *CatalogHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "faq.html", nil)
}

func (h *CatalogHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "reviews.html", nil)
}

func (h *CatalogHandler) ContactGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "contact.html", nil)
}

// ContactPost accepts the contact form but does not persist it; the message
// is logged with a reference id and the visitor gets a confirmation flash.
func (h *CatalogHandler) ContactPost(w http.ResponseWriter, r *http.Request) {
	slog.Info("Contact message received",
		"ref", uuid.NewString(),
		"name", r.FormValue("name"),
		"email", r.FormValue("email"),
	)
	h.addFlash(w, r, "success", "Message sent successfully!")
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
