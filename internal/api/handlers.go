// internal/api/handlers.go
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/models"
	"medassist-workers/internal/pharmacy"
)

// ==========================
// Symptoms
// ==========================

type analyzeResponse struct {
	*models.AnalysisResult
	RecordID string `json:"recordId,omitempty"`
}

func (h *Handler) analyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var report models.SymptomReport
	if err := decode(r, &report); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.svc.Analyzer.Analyze(r.Context(), report)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := analyzeResponse{AnalysisResult: result}
	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		rec, err := h.svc.Records.SaveAnalysis(r.Context(), report, result)
		if err != nil {
			// the analysis is still useful without the record
			h.logger.Warn("failed to save analysis", map[string]interface{}{"error": err.Error()})
		} else {
			resp.RecordID = rec.ID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type emergencyRequest struct {
	Text string `json:"text"`
}

func (h *Handler) checkEmergency(w http.ResponseWriter, r *http.Request) {
	var req emergencyRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, r, apperrors.NewInputEmptyError("text"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isEmergency": h.svc.Analyzer.CheckEmergency(r.Context(), req.Text)})
}

// ==========================
// Medicines and pharmacies
// ==========================

func (h *Handler) medicineRecommendations(w http.ResponseWriter, r *http.Request) {
	category := models.Category(chi.URLParam(r, "category"))
	meds, err := h.svc.Catalog.ForCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"category": category, "medicines": meds})
}

func (h *Handler) listPharmacies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"pharmacies": h.svc.Pharmacy.Pharmacies()})
}

func (h *Handler) searchMedicine(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	quotes, err := h.svc.Pharmacy.SearchWithPrescription(q.Get("name"), q.Get("prescriptionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"medicine": strings.TrimSpace(q.Get("name")), "quotes": quotes})
}

func (h *Handler) checkPrescription(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.writeError(w, r, apperrors.NewInputEmptyError("name"))
		return
	}
	writeJSON(w, http.StatusOK, pharmacy.CheckPrescriptionRequired(name))
}

// ==========================
// Orders
// ==========================

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req pharmacy.OrderRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.svc.Orders.PlaceOrder(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Orders.TrackOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ==========================
// Records and reminders
// ==========================

func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	var rec models.HealthRecord
	if err := decode(r, &rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	stored, err := h.svc.Records.AddHealthRecord(r.Context(), rec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *Handler) queryRecords(w http.ResponseWriter, r *http.Request) {
	q, err := parseRecordQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	summary, err := h.svc.Records.QueryHealthRecords(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// parseRecordQuery reads limit, sinceDays, search and a comma-separated or
// repeated severity parameter.
func parseRecordQuery(r *http.Request) (models.RecordQuery, error) {
	values := r.URL.Query()
	var q models.RecordQuery

	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &q.Limit}, {"sinceDays", &q.SinceDays}} {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, apperrors.NewValidationError(p.name, "must be an integer")
		}
		*p.dst = n
	}

	for _, raw := range values["severity"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				q.Severities = append(q.Severities, models.ParseSeverity(part))
			}
		}
	}
	q.Search = values.Get("search")
	return q, nil
}

func (h *Handler) setReminder(w http.ResponseWriter, r *http.Request) {
	var rem models.Reminder
	if err := decode(r, &rem); err != nil {
		h.writeError(w, r, err)
		return
	}
	stored, err := h.svc.Records.SetReminder(r.Context(), rem)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *Handler) listReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.Records.ListActiveReminders(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reminders": reminders})
}

func (h *Handler) deactivateReminder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Records.DeactivateReminder(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
