package server

import (
	"net/http"

	"mise/internal/handlers"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", handlers.Health)
	mux.HandleFunc("/login", handlers.Login)
	mux.HandleFunc("/signup", handlers.Signup)
	mux.HandleFunc("/logout", handlers.Logout)

	mux.Handle("/app", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("/app/{$}", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("POST /app/api/recipes/{id}/cost", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecomputeRecipeCost)))
	mux.Handle("GET /app/api/recipes/{id}/usage", handlers.RequireAuthentication(http.HandlerFunc(handlers.RecipeUsage)))
	mux.Handle("GET /app/reports/variance", handlers.RequireAuthentication(http.HandlerFunc(handlers.VarianceReport)))

	mux.Handle("/", http.RedirectHandler("/login", http.StatusSeeOther))
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))

	return mux
}
