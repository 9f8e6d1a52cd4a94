package handlers

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shalliecode/volydog/internal/models"
	"github.com/shalliecode/volydog/internal/notify"
	"github.com/shalliecode/volydog/internal/store"
)

type CheckoutHandler struct {
	*Base
	Notifier *notify.Notifier
}

type checkoutForm struct {
	Name          string  `schema:"name" validate:"required"`
	Email         string  `schema:"email" validate:"required,email"`
	Phone         string  `schema:"phone"`
	Address       string  `schema:"address"`
	PaymentMethod string  `schema:"payment_method"`
	TotalAmount   float64 `schema:"total_amount" validate:"required,gt=0"`
	Notes         string  `schema:"notes"`
	ProductID     int64   `schema:"product_id"`
}

// orderNumberPrefix + second-resolution timestamp forms the public order id.
const orderNumberPrefix = "VELY"

func generateOrderNumber() string {
	return orderNumberPrefix + time.Now().Format("20060102150405")
}

// orderNumberSuffix yields a short random tag appended on a same-second
// collision. Charset drops I, O, 1, 0 to avoid confusion.
func orderNumberSuffix() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano()%100, 10)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

func (h *CheckoutHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{}
	if idStr := r.URL.Query().Get("product_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			if product, err := h.Store.GetProductByID(id); err == nil {
				data["Product"] = product
			}
		}
	}
	h.render(w, r, "checkout.html", data)
}

func (h *CheckoutHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.addFlash(w, r, "danger", "Invalid form data.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	var form checkoutForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		h.addFlash(w, r, "danger", "Invalid form data.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}
	if err := validate.Struct(form); err != nil {
		h.addFlash(w, r, "danger", "Please provide your name, a valid email and the order total.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		CustomerAddress: form.Address,
		PaymentMethod:   form.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		Status:          models.OrderPending,
		TotalAmount:     form.TotalAmount,
		Notes:           form.Notes,
	}

	if user := h.currentUser(r); user != nil {
		order.UserID = &user.ID
	}

	// Single line item per checkout; unit price is snapshotted from the
	// product's current price so later edits don't rewrite history.
	if form.ProductID > 0 {
		product, err := h.Store.GetProductByID(form.ProductID)
		if err != nil {
			if err == store.ErrNotFound {
				h.addFlash(w, r, "danger", "That puppy is no longer available.")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			slog.Error("Failed to fetch product for checkout", "id", form.ProductID, "error", err)
			h.addFlash(w, r, "danger", "Failed to place order. Please try again.")
			http.Redirect(w, r, "/checkout", http.StatusSeeOther)
			return
		}
		order.Items = []models.OrderItem{{
			ProductID: product.ID,
			Quantity:  1,
			Price:     product.Price,
		}}
	}

	if err := h.createWithRetry(order); err != nil {
		slog.Error("Failed to create order", "error", err)
		h.addFlash(w, r, "danger", "Failed to place order. Please try again.")
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	h.Notifier.SendOrderEmail(order)
	h.Notifier.SendWhatsAppNotification(order)

	slog.Info("Order placed", "order_number", order.OrderNumber, "total", order.TotalAmount)
	h.addFlash(w, r, "success", "Order placed successfully! Admin will contact you for payment processing.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// createWithRetry retries with a random order-number suffix when two orders
// land within the same second and collide on the unique order number.
func (h *CheckoutHandler) createWithRetry(order *models.Order) error {
	base := order.OrderNumber
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		if err = h.Store.CreateOrder(order); err == nil {
			return nil
		}
		if !store.IsOrderNumberConflict(err) {
			return err
		}
		order.OrderNumber = base + orderNumberSuffix()
		slog.Warn("Order number collision, retrying with suffix", "order_number", order.OrderNumber)
	}
	return err
}
