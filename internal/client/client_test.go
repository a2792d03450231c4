package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"alfredoptarigan/resume-radar/internal/apperrors"
)

func TestSaveResume(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/resumes/save" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Resume saved successfully","resume":{"id":"6f1c2d7e-8a9b-4c3d-9e0f-112233445566","name":"Jane Doe"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil, nil)
	resume, err := c.SaveResume(context.Background(), map[string]any{"name": "Jane Doe", "file_size": 1024})
	if err != nil {
		t.Fatalf("SaveResume: %v", err)
	}
	if resume.Name != "Jane Doe" || resume.ID.String() != "6f1c2d7e-8a9b-4c3d-9e0f-112233445566" {
		t.Fatalf("unexpected resume %+v", resume)
	}
	if got["name"] != "Jane Doe" || got["file_size"] != float64(1024) {
		t.Fatalf("unexpected request body %v", got)
	}
}

func TestSaveResumeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Failed to save resume","error":"database is down"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil, nil).SaveResume(context.Background(), map[string]any{})
	if !apperrors.Is(err, apperrors.ErrTypeStoreFailed) {
		t.Fatalf("expected store failure, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError in chain, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "Failed to save resume" || apiErr.Detail != "database is down" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestListResumes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resumes/getresumes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"name":"Jane Doe","skills":["Python"]},{"name":"John Roe"}]`))
	}))
	defer srv.Close()

	resumes, err := New(srv.URL, nil, nil).ListResumes(context.Background())
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if len(resumes) != 2 || resumes[0].Skills[0] != "Python" {
		t.Fatalf("unexpected resumes %+v", resumes)
	}
}

func TestListResumesNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	resumes, err := New(srv.URL, nil, nil).ListResumes(context.Background())
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if resumes == nil || len(resumes) != 0 {
		t.Fatalf("expected empty slice, got %#v", resumes)
	}
}

func TestListResumesNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil, nil).ListResumes(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 APIError, got %v", err)
	}
}
