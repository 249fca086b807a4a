package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vbarbosa/email-triage/internal/config"
	"github.com/vbarbosa/email-triage/internal/core/usecase"
	"github.com/vbarbosa/email-triage/internal/infrastructure/extractor"
	"github.com/vbarbosa/email-triage/internal/infrastructure/llm/openai"
	"github.com/vbarbosa/email-triage/internal/infrastructure/resilience"
	"github.com/vbarbosa/email-triage/internal/infrastructure/textproc"
)

// mockUpstream answers classification requests (small output cap) with the
// configured label and everything else with the configured reply.
func mockUpstream(t *testing.T, label, reply string, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		var payload struct {
			MaxTokens int `json:"max_tokens"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode upstream request: %v", err)
		}
		answer := reply
		if payload.MaxTokens < 100 {
			answer = label
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, answer)
	}))
}

func newTriageHandler(upstreamURL, apiKey string) http.Handler {
	client := openai.New(openai.Options{
		BaseURL:    upstreamURL,
		APIKey:     apiKey,
		Resilience: resilience.Config{BreakerEnabled: false},
	})
	uc := usecase.NewTriageEmailUseCase(
		extractor.NewDispatcher(),
		textproc.NewNormalizer(),
		openai.NewClassifier(client),
		openai.NewReplyGenerator(client),
		usecase.Limits{},
	)
	return NewRouter(config.Config{}, uc, nil).Handler()
}

func postEmailText(t *testing.T, handler http.Handler, text string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("email_text", text); err != nil {
		t.Fatalf("write form field: %v", err)
	}
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/processar_email", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func postEmailFile(t *testing.T, handler http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("email_file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/processar_email", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func decodeResponse(t *testing.T, res *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var parsed map[string]string
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return parsed
}

func TestProcessEmailEndToEndWithMockedUpstream(t *testing.T) {
	upstream := mockUpstream(t, "Produtivo", "Recebemos sua solicitação e retornaremos em até 24 horas.", nil)
	defer upstream.Close()

	handler := newTriageHandler(upstream.URL, "test-key")
	res := postEmailText(t, handler, "Preciso de suporte urgente com o sistema.")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	parsed := decodeResponse(t, res)
	if parsed["status"] != "success" {
		t.Fatalf("status = %q", parsed["status"])
	}
	if parsed["classification"] != "Produtivo" {
		t.Fatalf("classification = %q", parsed["classification"])
	}
	if parsed["auto_reply"] != "Recebemos sua solicitação e retornaremos em até 24 horas." {
		t.Fatalf("auto_reply = %q", parsed["auto_reply"])
	}
	if parsed["original_email"] != "Preciso de suporte urgente com o sistema." {
		t.Fatalf("original_email = %q", parsed["original_email"])
	}
	if parsed["processed_text"] != "preciso suporte urgente sistema" {
		t.Fatalf("processed_text = %q", parsed["processed_text"])
	}
}

func TestProcessEmailTxtUploadEndToEnd(t *testing.T) {
	upstream := mockUpstream(t, "Improdutivo", "Agradecemos a mensagem!", nil)
	defer upstream.Close()

	handler := newTriageHandler(upstream.URL, "test-key")
	res := postEmailFile(t, handler, "natal.txt", []byte("Feliz Natal a toda a equipe!"))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	parsed := decodeResponse(t, res)
	if parsed["classification"] != "Improdutivo" {
		t.Fatalf("classification = %q", parsed["classification"])
	}
	if parsed["auto_reply"] != "Agradecemos a mensagem!" {
		t.Fatalf("auto_reply = %q", parsed["auto_reply"])
	}
}

func TestProcessEmailOversizedUploadRejectedWithoutUpstreamCall(t *testing.T) {
	calls := 0
	upstream := mockUpstream(t, "Produtivo", "resposta", &calls)
	defer upstream.Close()

	handler := newTriageHandler(upstream.URL, "test-key")
	res := postEmailFile(t, handler, "grande.txt", bytes.Repeat([]byte("a"), 11<<20))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 11 MiB upload, got %d", res.Code)
	}
	parsed := decodeResponse(t, res)
	if parsed["status"] != "error" {
		t.Fatalf("status = %q", parsed["status"])
	}
	if calls != 0 {
		t.Fatalf("expected zero upstream calls, got %d", calls)
	}
}

func TestProcessEmailUnsupportedFormatRejectedWithoutUpstreamCall(t *testing.T) {
	calls := 0
	upstream := mockUpstream(t, "Produtivo", "resposta", &calls)
	defer upstream.Close()

	handler := newTriageHandler(upstream.URL, "test-key")
	res := postEmailFile(t, handler, "relatorio.docx", []byte("conteúdo qualquer"))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for .docx upload, got %d", res.Code)
	}
	parsed := decodeResponse(t, res)
	if !strings.Contains(parsed["message"], ".txt ou .pdf") {
		t.Fatalf("expected actionable format message, got %q", parsed["message"])
	}
	if calls != 0 {
		t.Fatalf("expected zero upstream calls, got %d", calls)
	}
}

func TestProcessEmailWithoutContentReturns400(t *testing.T) {
	handler := newTriageHandler("http://unused.invalid", "test-key")
	res := postEmailText(t, handler, "   ")
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
	parsed := decodeResponse(t, res)
	if parsed["message"] != "Nenhum conteúdo de e-mail fornecido." {
		t.Fatalf("message = %q", parsed["message"])
	}
}

func TestProcessEmailMissingCredentialReturns401(t *testing.T) {
	handler := newTriageHandler("http://unused.invalid", "")
	res := postEmailText(t, handler, "Preciso de ajuda com meu pedido.")
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}

func TestProcessEmailUpstreamRateLimitReturns429(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	handler := newTriageHandler(upstream.URL, "test-key")
	res := postEmailText(t, handler, "Preciso de ajuda.")
	if res.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", res.Code)
	}
}

func TestProcessEmailUpstreamOutageReturnsGeneric500(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal provider detail", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	handler := newTriageHandler(upstream.URL, "test-key")
	res := postEmailText(t, handler, "Preciso de ajuda.")
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
	parsed := decodeResponse(t, res)
	if parsed["message"] != "Erro interno ao processar o e-mail." {
		t.Fatalf("upstream detail must not leak to the client, got %q", parsed["message"])
	}
}

func TestProcessEmailRejectsNonPOST(t *testing.T) {
	handler := newTriageHandler("http://unused.invalid", "test-key")
	req := httptest.NewRequest(http.MethodGet, "/processar_email", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTriageHandler("http://unused.invalid", "test-key")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	parsed := decodeResponse(t, res)
	if parsed["status"] != "healthy" {
		t.Fatalf("status = %q", parsed["status"])
	}
}

func TestLandingPageServed(t *testing.T) {
	handler := newTriageHandler("http://unused.invalid", "test-key")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if ct := res.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(res.Body.String(), "processar_email") {
		t.Fatalf("landing page must reference the triage endpoint")
	}
}
