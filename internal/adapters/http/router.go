package httpadapter

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbarbosa/email-triage/internal/config"
	"github.com/vbarbosa/email-triage/internal/core/domain"
	"github.com/vbarbosa/email-triage/internal/core/ports"
	"github.com/vbarbosa/email-triage/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg     config.Config
	triage  ports.EmailTriager
	metrics *metrics.ServerMetrics
}

func NewRouter(cfg config.Config, triage ports.EmailTriager, m *metrics.ServerMetrics) *Router {
	return &Router{
		cfg:     cfg,
		triage:  triage,
		metrics: m,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.home)
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/processar_email", rt.processEmail)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.cfg.MaxConcurrentRequests > 0 {
		wait := time.Duration(rt.cfg.BackpressureWaitMS) * time.Millisecond
		handler = backpressureMiddleware(handler, rt.cfg.MaxConcurrentRequests, wait)
	}
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

type successResponse struct {
	Status         string `json:"status"`
	Classification string `json:"classification"`
	AutoReply      string `json:"auto_reply"`
	OriginalEmail  string `json:"original_email"`
	ProcessedText  string `json:"processed_text"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (rt *Router) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorResponse{Status: "error", Message: "Rota não encontrada."})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(landingPage)
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Serviço de triagem de e-mails operacional.",
	})
}

func (rt *Router) processEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Status: "error", Message: "Método não permitido."})
		return
	}

	req := domain.TriageRequest{Text: r.FormValue("email_text")}

	if file, header, err := r.FormFile("email_file"); err == nil {
		defer file.Close()

		data, readErr := io.ReadAll(file)
		if readErr != nil {
			rt.writeError(w, r, domain.WrapError(domain.ErrDecode, "read upload", readErr))
			return
		}
		req.File = &domain.EmailDocument{
			Filename: header.Filename,
			Data:     data,
			Size:     int64(len(data)),
		}
	}

	start := time.Now()
	result, err := rt.triage.Triage(r.Context(), req)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordTriage(serviceName, string(result.Classification), time.Since(start))
	}
	writeJSON(w, http.StatusOK, successResponse{
		Status:         "success",
		Classification: string(result.Classification),
		AutoReply:      result.AutoReply,
		OriginalEmail:  result.OriginalEmail,
		ProcessedText:  result.ProcessedText,
	})
}

// writeError produces exactly one server-side log record and one structured
// response per failure. Input errors keep an actionable message; everything
// upstream or unexpected stays generic on the client side.
func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)

	logAttrs := []any{
		"request_id", requestIDFromContext(r.Context()),
		"status", status,
		"error", err,
	}
	if status >= 500 {
		slog.Error("triage_failed", logAttrs...)
	} else {
		slog.Warn("triage_rejected", logAttrs...)
	}

	if rt.metrics != nil {
		rt.metrics.RecordTriageError(serviceName, status)
	}
	writeJSON(w, status, errorResponse{Status: "error", Message: clientMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
