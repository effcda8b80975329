package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

func TestClient_LoginStoresToken(t *testing.T) {
	var (
		mu          sync.Mutex
		authHeaders []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		switch r.URL.Path {
		case "/api/admin/login":
			var req models.LoginRequest
			if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
				return
			}
			assert.Equal(t, "a@x.com", req.Email)
			assert.Equal(t, "secret", req.Password)
			_, _ = io.WriteString(w, `{"token":"tok-1","expiresAt":"2026-01-02T00:00:00Z"}`)
		case "/api/admin/refresh":
			_, _ = io.WriteString(w, `{"token":"tok-2","expiresAt":"2026-01-03T00:00:00Z"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	resp, err := c.Login(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "tok-1", c.Token())

	_, err = c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", c.Token())

	mu.Lock()
	assert.Equal(t, []string{"", "Bearer tok-1"}, authHeaders)
	mu.Unlock()

	c.Logout()
	assert.Empty(t, c.Token())
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Validation failed","details":[{"field":"name","message":"This field is required"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	_, err := c.CreateMentor(context.Background(), &models.MentorInput{Email: "jane@x.com"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation failed", apiErr.Message)
	assert.JSONEq(t, `[{"field":"name","message":"This field is required"}]`, string(apiErr.Details))
}

func TestClient_APIErrorPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteMentor(context.Background(), 3)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestClient_ListMentorsSendsFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mentors", r.URL.Path)
		assert.Equal(t, "Waterloo", r.URL.Query().Get("university"))
		assert.Equal(t, "2020", r.URL.Query().Get("graduation_year"))
		_, _ = io.WriteString(w, `[{"id":1,"name":"Jane","graduation_year":2020}]`)
	}))
	defer srv.Close()

	mentors, err := New(srv.URL).ListMentors(context.Background(), models.MentorFilter{
		University:     "Waterloo",
		GraduationYear: models.Year(2020),
	})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "Jane", mentors[0].Name)
	assert.Equal(t, models.Year(2020), mentors[0].GraduationYear)
}

func TestClient_GetMentorFromListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"Jane"},{"id":2,"name":"Arjun"}]`)
	}))
	defer srv.Close()

	c := New(srv.URL)

	m, err := c.GetMentor(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Arjun", m.Name)

	_, err = c.GetMentor(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_CreateUpdateDelete(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"message":"Mentor created successfully","id":11}`)
		case http.MethodPut:
			_, _ = io.WriteString(w, `{"message":"Mentor updated successfully"}`)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"Mentor not found"}`)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	in := &models.MentorInput{Name: "Jane", Email: "jane@x.com"}

	id, err := c.CreateMentor(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	require.NoError(t, c.UpdateMentor(context.Background(), 11, in))

	err = c.DeleteMentor(context.Background(), 11)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"POST /api/mentors", "PUT /api/mentors/11", "DELETE /api/mentors/11"}, calls)
}

func TestClient_UploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "photo.png", header.Filename)
		assert.Equal(t, "png-bytes", string(data))
		_, _ = io.WriteString(w, `{"imageUrl":"https://cdn.example.com/mentors/x.png"}`)
	}))
	defer srv.Close()

	url, err := New(srv.URL, WithToken("tok")).UploadImage(context.Background(), "photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/mentors/x.png", url)
}

func TestClient_Contact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mentors/4/contact", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"message":"Message sent successfully"}`)
	}))
	defer srv.Close()

	err := New(srv.URL).Contact(context.Background(), 4, &models.ContactMessage{Name: "V", Email: "v@x.com", Message: "Hi"})
	assert.NoError(t, err)
}
