package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"books_api/internal/models"
	"books_api/internal/service"
	"books_api/internal/storage"
)

const (
	maxBodyBytes    = 1 << 20
	requestIDHeader = "X-Request-ID"
)

type Server struct {
	catalog *service.Catalog
	logger  *zap.Logger
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func New(catalog *service.Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog: catalog,
		logger:  logger.Named("http"),
	}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/books", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/books/", s.handleFilter).Methods(http.MethodGet)
	r.HandleFunc("/create-book", s.handleCreate).Methods(http.MethodPost)
	// Registered before /books/{id} so the literal segment wins.
	r.HandleFunc("/books/update-book", s.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc("/books/{id}", s.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/books/{id}", s.handleDelete).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		reqID := req.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		r.ServeHTTP(rec, req)
		s.logger.Info("request",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", reqID),
			zap.String("ua", req.UserAgent()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	books, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	verr := &service.ValidationError{}
	rating := queryInt(q.Get("rating"), "rating", verr)
	published := queryInt(q.Get("published_date"), "published_date", verr)
	if len(verr.Fields) > 0 {
		s.writeError(w, r, verr)
		return
	}

	books, err := s.catalog.Filter(r.Context(), rating, published)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBook(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	book, err := s.catalog.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBook(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.catalog.Update(r.Context(), req); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps service and store errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"detail": verr.Fields})
	case errors.Is(err, storage.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Book not found")
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// pathID reads the {id} segment, which must be a positive integer.
func pathID(r *http.Request) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, service.NewValidationError("id", "gt", "must be a positive integer")
	}
	return id, nil
}

// queryInt parses an optional integer parameter. Failures are appended to verr.
func queryInt(raw string, name string, verr *service.ValidationError) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		verr.Fields = append(verr.Fields, service.FieldError{
			Field:      name,
			Constraint: "int",
			Message:    "must be an integer",
		})
		return nil
	}
	return &v
}

func decodeBook(w http.ResponseWriter, r *http.Request) (models.BookRequest, error) {
	var req models.BookRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return req, service.NewValidationError(typeErr.Field, "type", "must be of type "+typeErr.Type.String())
		}
		return req, service.NewValidationError("body", "json", "invalid json: "+err.Error())
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, service.NewValidationError("body", "json", "invalid json: unexpected data after the object")
	}
	return req, nil
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
