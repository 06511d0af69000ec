package router

import (
	"encoding/json"
	"net/http"

	"gestionrecursos/internal/auth"
	"gestionrecursos/internal/resource"
	"gestionrecursos/internal/resource/model"
	"gestionrecursos/internal/resource/repository"
	"gestionrecursos/internal/resource/service"
	"gestionrecursos/middleware"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20 // 1MB

func Setup(verifier auth.Verifier, store repository.DocumentStore, frontendOrigin string) http.Handler {
	empleados := resource.NewHandler(service.New(store, model.Empleados))
	productos := resource.NewHandler(service.New(store, model.Productos))

	r := chi.NewRouter()
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(frontendOrigin))
	r.Use(middleware.LimitBody(maxBodyBytes))
	r.Use(middleware.Auth(verifier))

	r.Get("/empleados", empleados.List)
	r.Post("/empleados/upsert", empleados.Upsert)
	r.Delete("/empleados/{id}", empleados.Delete)

	r.Get("/productos", productos.List)
	r.Post("/productos/upsert", productos.Upsert)
	r.Delete("/productos/{id}", productos.Delete)

	// Reaching this handler means the auth gate already accepted the token.
	r.Get("/verificar-token", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"valido":  true,
			"usuario": middleware.IdentityFrom(req.Context()),
		})
	})

	return r
}
