package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/inspectana/leadgen/internal/form"
	"github.com/inspectana/leadgen/internal/model"
	"github.com/inspectana/leadgen/internal/store"
	"github.com/inspectana/leadgen/internal/submit"
)

// inspectionRequestBody mirrors the wizard draft field names.
type inspectionRequestBody struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Street           string `json:"street"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zipCode"`
	InspectionType   string `json:"inspectionType"`
	InsuranceCompany string `json:"insuranceCompany"`
	PolicyNumber     string `json:"policyNumber"`
	AgencyName       string `json:"agencyName"`
	AgentName        string `json:"agentName"`
	AgentPhone       string `json:"agentPhone"`
	AgentEmail       string `json:"agentEmail"`
}

type interestLeadBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// notificationBody is the relay payload for clients that send their own
// notification emails through this service.
type notificationBody struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSubmitError maps pipeline errors onto HTTP statuses. Validation
// failures carry the per-field error map.
func writeSubmitError(w http.ResponseWriter, err error) {
	var vErr *submit.ValidationError
	switch {
	case eris.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": vErr.Fields})
	case eris.Is(err, submit.ErrDuplicateSubmission):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleCreateInspectionRequest(w http.ResponseWriter, r *http.Request) {
	var body inspectionRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.pipeline.SubmitInspection(r.Context(), form.Draft{
		FullName:         body.FullName,
		Email:            body.Email,
		Phone:            body.Phone,
		Street:           body.Street,
		City:             body.City,
		State:            body.State,
		ZipCode:          body.ZipCode,
		InspectionType:   body.InspectionType,
		InsuranceCompany: body.InsuranceCompany,
		PolicyNumber:     body.PolicyNumber,
		AgencyName:       body.AgencyName,
		AgentName:        body.AgentName,
		AgentPhone:       body.AgentPhone,
		AgentEmail:       body.AgentEmail,
	})
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCreateInterestLead(w http.ResponseWriter, r *http.Request) {
	var body interestLeadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.pipeline.SubmitInterest(r.Context(), form.InterestDraft{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Company:   body.Company,
		Phone:     body.Phone,
		Message:   body.Message,
	})
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRelayNotification(w http.ResponseWriter, r *http.Request) {
	if s.notifier == nil {
		writeError(w, http.StatusServiceUnavailable, "notifications not configured")
		return
	}

	var body notificationBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	kind := model.SubmissionKind(body.Type)
	if kind != model.KindInspectionRequest && kind != model.KindInterestForm {
		writeError(w, http.StatusBadRequest, "unknown notification type")
		return
	}
	if len(body.Data) == 0 {
		writeError(w, http.StatusBadRequest, "notification data is required")
		return
	}

	emailID, err := s.notifier.NotifyRaw(r.Context(), kind, body.Data)
	if err != nil {
		zap.L().Error("relay notification", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to send notification",
			"details": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "emailId": emailID})
}

func (s *Server) handleListInspectionRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.store.ListInspectionRequests(r.Context(), listFilter(r))
	if err != nil {
		zap.L().Error("list inspection requests", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list inspection requests")
		return
	}
	if reqs == nil {
		reqs = []model.InspectionRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": reqs, "count": len(reqs)})
}

func (s *Server) handleListInterestLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.store.ListInterestLeads(r.Context(), listFilter(r))
	if err != nil {
		zap.L().Error("list interest leads", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list interest leads")
		return
	}
	if leads == nil {
		leads = []model.InterestLead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": leads, "count": len(leads)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func listFilter(r *http.Request) store.ListFilter {
	var f store.ListFilter
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}
	return f
}
