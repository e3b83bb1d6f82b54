package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pujcovna-backend/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// NewRouter wires all API routes. Admin routes sit behind the session
// middleware; everything else is public.
func NewRouter(
	auth *AuthHandler,
	equipment *EquipmentHandler,
	reservations *ReservationHandler,
	uploads *UploadHandler,
	uploadDir string,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", auth.Login).Methods("POST")
	api.HandleFunc("/auth/logout", auth.Logout).Methods("POST")
	api.HandleFunc("/auth/status", auth.Status).Methods("GET")

	api.HandleFunc("/equipment", equipment.List).Methods("GET")
	api.HandleFunc("/equipment/{id:[0-9]+}", equipment.Get).Methods("GET")
	api.HandleFunc("/equipment/{id:[0-9]+}/availability", equipment.Availability).Methods("POST")
	api.HandleFunc("/equipment/{id:[0-9]+}/reservations", equipment.Reservations).Methods("GET")

	api.HandleFunc("/reservations", reservations.Create).Methods("POST")
	api.HandleFunc("/reservations/{orderNumber:P[0-9]+}", reservations.GetByOrderNumber).Methods("GET")
	api.HandleFunc("/reservations/{id:[0-9]+}/items", reservations.Items).Methods("GET")

	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/equipment", equipment.Create).Methods("POST")
	admin.HandleFunc("/equipment/reorder", equipment.Reorder).Methods("POST")
	admin.HandleFunc("/equipment/{id:[0-9]+}", equipment.Update).Methods("PUT")
	admin.HandleFunc("/equipment/{id:[0-9]+}", equipment.Delete).Methods("DELETE")
	admin.HandleFunc("/reservations", reservations.List).Methods("GET")
	admin.HandleFunc("/reservations/{id:[0-9]+}", reservations.Update).Methods("PUT")
	admin.HandleFunc("/reservations/{id:[0-9]+}/items", reservations.ReplaceItems).Methods("PUT")
	admin.HandleFunc("/reservations/{id:[0-9]+}/status", reservations.UpdateStatus).Methods("PATCH")
	admin.HandleFunc("/reservations/{id:[0-9]+}", reservations.Delete).Methods("DELETE")
	admin.HandleFunc("/reservations/{id:[0-9]+}/invoice", reservations.Invoice).Methods("POST")
	admin.HandleFunc("/upload-image", uploads.Upload).Methods("POST")

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return r
}
