package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/onerilhan/guild-payout-api/internal/importer"
	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	apierrors "github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// PriceHandler fiyat endpoint'leri
type PriceHandler struct {
	service        interfaces.PriceServiceInterface
	maxUploadBytes int64
}

// NewPriceHandler yeni handler oluşturur
func NewPriceHandler(service interfaces.PriceServiceInterface, maxUploadBytes int64) *PriceHandler {
	return &PriceHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes fiyat route'larını router'a ekler
func (h *PriceHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/prices", h.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/prices", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/prices/upload", h.Upload).Methods(http.MethodPost)
	router.HandleFunc("/prices/{id:[0-9]+}", h.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/prices/{id:[0-9]+}", h.Update).Methods(http.MethodPatch)
	router.HandleFunc("/prices/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}

// priceID path'teki id'yi okur
func priceID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apierrors.BadRequest("id", "Geçersiz fiyat ID", err)
	}
	return id, nil
}

// GetAll GET /prices
func (h *PriceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	prices, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

// GetByID GET /prices/{id}
func (h *PriceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := priceID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	price, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

// Create POST /prices
func (h *PriceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var price models.Price
	if err := decodeJSON(r, &price); err != nil {
		writeError(w, r, err)
		return
	}
	price.ID = 0

	created, err := h.service.Create(r.Context(), &price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Upload POST /prices/upload
func (h *PriceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, err := openUpload(w, r, h.maxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	prices, err := importer.ParsePrices(file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.service.BulkCreate(r.Context(), prices)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": n})
}

// Update PATCH /prices/{id}
func (h *PriceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := priceID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var patch models.PricePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	price, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, price)
}

// Delete DELETE /prices/{id}
func (h *PriceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := priceID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}
