package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires every route onto a chi mux. The /admin subtree is guarded
// twice over: page routes redirect unauthorized callers, JSON routes answer
// with a 403 body.
func NewRouter(auth *AuthHandler, catalog *CatalogHandler, checkout *CheckoutHandler, admin *AdminHandler) *chi.Mux {
	r := chi.NewRouter()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	// Public catalog
	r.Get("/", catalog.Index)
	r.Get("/puppies", catalog.Puppies)
	r.Get("/product/{id}", catalog.ProductDetail)
	r.Get("/checkout", checkout.CheckoutForm)
	r.Post("/checkout", checkout.SubmitCheckout)

	// Accounts
	r.Get("/login", auth.LoginGet)
	r.Post("/login", auth.LoginPost)
	r.Get("/register", auth.RegisterGet)
	r.Post("/register", auth.RegisterPost)
	r.With(auth.RequireLogin).Get("/logout", auth.Logout)

	// Informational pages
	r.Get("/about", catalog.About)
	r.Get("/contact", catalog.ContactGet)
	r.Post("/contact", catalog.ContactPost)
	r.Get("/faq", catalog.FAQ)
	r.Get("/reviews", catalog.Reviews)

	// Admin back-office
	r.Route("/admin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/", admin.Dashboard)
			r.Get("/site-settings", admin.SiteSettingsGet)
			r.Post("/site-settings", admin.SiteSettingsPost)
			r.Get("/products", admin.ListProducts)
			r.Get("/product/add", admin.AddProductForm)
			r.Post("/product/add", admin.CreateProduct)
			r.Get("/product/edit/{id}", admin.EditProductForm)
			r.Post("/product/edit/{id}", admin.UpdateProduct)
			r.Get("/orders", admin.ListOrders)
			r.Get("/order/{id}", admin.ViewOrder)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdminJSON)
			r.Post("/product/delete/{id}", admin.DeleteProduct)
			r.Post("/product/{id}/delete-image", admin.DeleteProductImage)
			r.Post("/order/update_status/{id}", admin.UpdateOrderStatus)
			r.Post("/order/update_payment/{id}", admin.UpdateOrderPayment)
		})
	})

	return r
}
