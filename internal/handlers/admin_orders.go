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

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetAllOrders()
	if err != nil {
		slog.Error("Failed to fetch orders", "error", err)
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "admin_orders.html", map[string]interface{}{
		"Orders": orders,
	})
}

func (h *AdminHandler) ViewOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	order, err := h.Store.GetOrderByID(id)
	if err != nil {
		if err == store.ErrNotFound {
			http.NotFound(w, r)
			return
		}
		slog.Error("Failed to fetch order", "id", id, "error", err)
		http.Error(w, "Error fetching order", http.StatusInternalServerError)
		return
	}

	// Resolve product names for the line items; a blocked deletion policy
	// means referenced products always still exist.
	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		entry := map[string]interface{}{"Item": item, "ProductName": ""}
		if product, err := h.Store.GetProductByID(item.ProductID); err == nil {
			entry["ProductName"] = product.Name
		}
		items = append(items, entry)
	}

	h.render(w, r, "admin_view_order.html", map[string]interface{}{
		"Order": order,
		"Items": items,
	})
}

// UpdateOrderStatus is a JSON endpoint taking {"status": <value>}.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	h.updateOrderField(w, r, "status", models.ValidOrderStatus, h.Store.UpdateOrderStatus)
}

// UpdateOrderPayment is a JSON endpoint taking {"payment_status": <value>}.
func (h *AdminHandler) UpdateOrderPayment(w http.ResponseWriter, r *http.Request) {
	h.updateOrderField(w, r, "payment_status", models.ValidPaymentStatus, h.Store.UpdateOrderPaymentStatus)
}

func (h *AdminHandler) updateOrderField(w http.ResponseWriter, r *http.Request, field string, valid func(string) bool, update func(int64, string) error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	value := body[field]
	if !valid(value) {
		respondWithError(w, http.StatusBadRequest, "Invalid "+field)
		return
	}

	if err := update(id, value); err != nil {
		if err == store.ErrNotFound {
			respondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		slog.Error("Failed to update order", "id", id, "field", field, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Error updating order")
		return
	}

	respondWithSuccess(w)
}
