package orchestrator_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resumeforge/internal/bootstrap"
	"resumeforge/internal/shared/config"
)

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "guest-123")
}

// stubOpenAI serves canned chat completions, one per request, in order.
func stubOpenAI(t *testing.T, contents []string) {
	t.Helper()
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if call >= len(contents) {
			t.Errorf("unexpected model call %d", call+1)
			http.Error(w, "no more responses", http.StatusInternalServerError)
			return
		}
		content := contents[call]
		call++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_URL", srv.URL)
	t.Setenv("OPENAI_API_KEY", "test-key")
}

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		LLMProvider:     "openai",
		LLMModel:        "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSessionGenerateSaveListRoundTrip(t *testing.T) {
	stubOpenAI(t, []string{
		`{"questions":["What achievement are you proudest of?"]}`,
		`{"resumeMarkdown":"# Ada Lovelace\n\n## Summary"}`,
		`{"optimizedResumeMarkdown":"# Ada Lovelace v2","atsMatchScore":88,"analysis":{"keywordAnalysis":{"foundKeywords":["Go"]}}}`,
	})
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create session: status %d: %s", resp.Code, resp.Body.String())
	}
	var sess struct {
		SessionID string `json:"sessionId"`
		State     string `json:"state"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&sess)
	if sess.State != "idle" {
		t.Fatalf("new session state = %q", sess.State)
	}

	profile := map[string]any{
		"name":           "Ada Lovelace",
		"targetJobTitle": "Software Engineer",
		"careerLevel":    "Mid-Level",
		"education":      []map[string]string{{"institution": "UCL", "degree": "BSc", "graduationDate": "1835"}},
		"workExperience": []map[string]string{{"company": "AE Ltd", "role": "Engineer", "dates": "1833", "responsibilities": "First program"}},
		"skills":         []string{"Go"},
	}
	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/generate", profile)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: status %d: %s", resp.Code, resp.Body.String())
	}
	var started struct {
		State     string   `json:"state"`
		Questions []string `json:"questions"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&started)
	if started.State != "awaiting_interview_answers" || len(started.Questions) != 1 {
		t.Fatalf("unexpected interview step: %+v", started)
	}

	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/answers", map[string]any{
		"answers": []map[string]string{{"question": started.Questions[0], "answer": "Wrote the first program"}},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("answers: status %d: %s", resp.Code, resp.Body.String())
	}
	var ready struct {
		State    string `json:"state"`
		Document string `json:"document"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&ready)
	if ready.State != "ready" || ready.Document == "" {
		t.Fatalf("unexpected ready state: %+v", ready)
	}

	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/optimize", map[string]string{
		"jobDescription": "Go engineer",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("optimize: status %d: %s", resp.Code, resp.Body.String())
	}
	var optimized struct {
		AtsScore *int   `json:"atsScore"`
		Document string `json:"document"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&optimized)
	if optimized.AtsScore == nil || *optimized.AtsScore != 88 {
		t.Fatalf("score = %v", optimized.AtsScore)
	}

	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/save", map[string]string{
		"name": "My Resume",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("save: status %d: %s", resp.Code, resp.Body.String())
	}
	var saved struct {
		ResumeID string `json:"resumeId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&saved)
	if saved.ResumeID == "" {
		t.Fatal("expected a resume id")
	}

	resp = doJSON(t, app.Router, http.MethodGet, "/api/v1/resumes", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: status %d", resp.Code)
	}
	var list []struct {
		ResumeID string `json:"resumeId"`
		Name     string `json:"name"`
		AtsScore *int   `json:"atsScore"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&list)
	if len(list) != 1 || list[0].Name != "My Resume" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].AtsScore == nil || *list[0].AtsScore != 88 {
		t.Fatal("score should be persisted with the resume")
	}

	// DOCX export works off the session document.
	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/export/docx", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("export docx: status %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("content type = %q", ct)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("empty docx body")
	}
}

func TestProviderOutageIsUpstreamError(t *testing.T) {
	call := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		if call == 1 {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": `{"questions":["Q1"]}`}},
				},
			})
			return
		}
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_URL", srv.URL)
	t.Setenv("OPENAI_API_KEY", "test-key")
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions", nil)
	var sess struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&sess)

	profile := map[string]any{
		"name":           "Ada Lovelace",
		"targetJobTitle": "Software Engineer",
		"careerLevel":    "Mid-Level",
		"education":      []map[string]string{{"institution": "UCL", "degree": "BSc", "graduationDate": "1835"}},
		"workExperience": []map[string]string{{"company": "AE Ltd", "role": "Engineer", "dates": "1833", "responsibilities": "First program"}},
		"skills":         []string{"Go"},
	}
	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/generate", profile)
	if resp.Code != http.StatusOK {
		t.Fatalf("generate: status %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/answers", map[string]any{"answers": []any{}})
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for provider outage, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error.Code != "upstream_error" {
		t.Fatalf("error code = %q, want upstream_error", body.Error.Code)
	}
}

func TestSaveWithoutDocumentIsValidationError(t *testing.T) {
	stubOpenAI(t, nil)
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions", nil)
	var sess struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&sess)

	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/save", map[string]string{"name": "Empty"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Error.Code != "validation_error" {
		t.Fatalf("error code = %q, want validation_error", body.Error.Code)
	}
}

func TestSessionAnswersBeforeGenerateIsConflict(t *testing.T) {
	stubOpenAI(t, nil)
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions", nil)
	var sess struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&sess)

	resp = doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions/"+sess.SessionID+"/answers", map[string]any{"answers": []any{}})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSessionNotFoundForOtherGuest(t *testing.T) {
	stubOpenAI(t, nil)
	app := buildApp(t)

	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/sessions", nil)
	var sess struct {
		SessionID string `json:"sessionId"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&sess)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sess.SessionID, nil)
	req.Header.Set("X-Guest-Id", "someone-else")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMissingIdentityIsUnauthorized(t *testing.T) {
	stubOpenAI(t, nil)
	app := buildApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
