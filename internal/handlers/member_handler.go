package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/onerilhan/guild-payout-api/internal/importer"
	"github.com/onerilhan/guild-payout-api/internal/interfaces"
	"github.com/onerilhan/guild-payout-api/internal/models"
)

// MemberHandler üye endpoint'leri
type MemberHandler struct {
	service        interfaces.MemberServiceInterface
	maxUploadBytes int64
}

// NewMemberHandler yeni handler oluşturur
func NewMemberHandler(service interfaces.MemberServiceInterface, maxUploadBytes int64) *MemberHandler {
	return &MemberHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// RegisterRoutes üye route'larını router'a ekler
func (h *MemberHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/member", h.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/member", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/member/upload", h.Upload).Methods(http.MethodPost)
	router.HandleFunc("/member/{username}", h.GetByUsername).Methods(http.MethodGet)
	router.HandleFunc("/member/{username}", h.Update).Methods(http.MethodPatch)
	router.HandleFunc("/member/{username}", h.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/member/{username}/payout", h.ProcessPayout).Methods(http.MethodPost)
	router.HandleFunc("/member/{username}/payouts", h.GetPayoutHistory).Methods(http.MethodGet)
}

// GetAll GET /member
func (h *MemberHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

// GetByUsername GET /member/{username}
func (h *MemberHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.GetByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// Create POST /member. Body'deki payout yok sayılır, yeni üye 0 ile başlar.
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	member, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

// Upload POST /member/upload. Sadece yeni üyeler eklenir.
func (h *MemberHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, err := openUpload(w, r, h.maxUploadBytes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	members, err := importer.ParseMembers(file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.service.BulkCreate(r.Context(), members)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Var olan üyeler import ile değişmez, skipped olarak raporlanır
	writeJSON(w, http.StatusCreated, map[string]int{"imported": n, "skipped": len(members) - n})
}

// Update PATCH /member/{username}
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.MemberPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	member, err := h.service.Update(r.Context(), mux.Vars(r)["username"], &patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// Delete DELETE /member/{username}
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	affected, err := h.service.Delete(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}

// ProcessPayout POST /member/{username}/payout. Body beklenmez.
func (h *MemberHandler) ProcessPayout(w http.ResponseWriter, r *http.Request) {
	member, err := h.service.ProcessPayout(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// GetPayoutHistory GET /member/{username}/payouts
func (h *MemberHandler) GetPayoutHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.GetPayoutHistory(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
