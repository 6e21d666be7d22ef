package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"example.com/userapi/internal/domain"
	"example.com/userapi/internal/storage"
	"example.com/userapi/internal/usecase"
	"example.com/userapi/pkg/response"
)

const apiPrefix = "/api"

type UserService interface {
	List(ctx context.Context) (usecase.UserPage, error)
	CreateFromPayload(ctx context.Context, payload map[string]any) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	Delete(ctx context.Context, id int64) (domain.User, error)
}

type InfoService interface {
	Hello() domain.Greeting
	Info(totalEndpoints int) domain.APIInfo
	Echo(payload any) domain.Echo
}

type Handler struct {
	router    chi.Router
	users     UserService
	info      InfoService
	endpoints int
}

// New builds the router. An empty allowedOrigins list allows any origin.
func New(users UserService, info InfoService, allowedOrigins []string) http.Handler {
	h := &Handler{
		router: chi.NewRouter(),
		users:  users,
		info:   info,
	}
	h.middlewares(allowedOrigins)
	h.routes()
	h.endpoints = countRoutes(h.router, apiPrefix)
	return h
}

func (h *Handler) middlewares(allowedOrigins []string) {
	h.router.Use(requestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(accessLog)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.StripSlashes)
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
}

func (h *Handler) routes() {
	h.router.Get("/healthz", h.health)
	h.router.Route(apiPrefix, func(r chi.Router) {
		r.Get("/hello", h.hello)
		r.Get("/info", h.apiInfo)
		r.Post("/test-post", h.testPost)
		r.Get("/users", h.listUsers)
		r.Post("/users/create", h.createUser)
		r.Get("/users/{id}", h.getUser)
		r.Delete("/users/{id}/delete", h.deleteUser)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]string{"ok": "true"})
}

func (h *Handler) hello(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.info.Hello())
}

func (h *Handler) apiInfo(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.info.Info(h.endpoints))
}

func (h *Handler) testPost(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := decodeJSON(r, &payload); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, h.info.Echo(payload))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, page)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := decodeJSON(r, &payload); err != nil {
		response.Fail(w, r, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	user, err := h.users.CreateFromPayload(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, r, http.StatusCreated, fmt.Sprintf("user %s created", user.Name), user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := usecase.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, "user found", user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := usecase.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, fmt.Sprintf("user %s deleted", user.Name), user)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *usecase.ValidationError
		nf   *usecase.NotFoundError
		bad  *usecase.BadRequestError
	)
	switch {
	case errors.As(err, &verr):
		response.Fail(w, r, http.StatusBadRequest, "invalid data", verr.Fields)
	case errors.As(err, &bad):
		log.Debug().Str("id", bad.Value).Str("path", r.URL.Path).Msg("rejected user id")
		response.Fail(w, r, http.StatusBadRequest, bad.Error(), nil)
	case errors.As(err, &nf):
		response.Fail(w, r, http.StatusNotFound, nf.Error(), nil)
	case errors.Is(err, storage.ErrNotFound):
		response.Fail(w, r, http.StatusNotFound, "not found", nil)
	default:
		log.Error().
			Err(err).
			Str("request_id", RequestIDFrom(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.Fail(w, r, http.StatusInternalServerError, "internal server error", nil)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data")
	}
	return nil
}

func countRoutes(r chi.Routes, prefix string) int {
	n := 0
	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, prefix+"/") {
			n++
		}
		return nil
	})
	return n
}
