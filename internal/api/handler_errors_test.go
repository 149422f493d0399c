package api

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"entrenador/gym-platform/internal/catalog"
	"entrenador/gym-platform/internal/domain"
	"entrenador/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubClientService struct {
	service.ClientService
}

func (s *stubClientService) UploadVideo(context.Context, primitive.ObjectID, string, string, service.FileUpload) (*domain.UserVideo, error) {
	return nil, service.ErrUploadFailed
}

type stubAdminService struct {
	service.AdminService
}

func (s *stubAdminService) UploadEnrollmentDocument(context.Context, primitive.ObjectID, domain.DocumentType, service.FileUpload) (*domain.Document, error) {
	return nil, service.ErrUploadFailed
}

type stubCatalogService struct {
	service.CatalogService
}

func (s *stubCatalogService) ListExercises(context.Context, catalog.ExerciseQuery) (*domain.CatalogPage, error) {
	return nil, errors.New("upstream timeout")
}

func withUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, primitive.NewObjectID().Hex())
		c.Next()
	}
}

func multipartUpload(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestUploadVideoStorageFaultReturnsServerError(t *testing.T) {
	handler := NewClientHandler(&stubClientService{})
	router := gin.New()
	router.POST("/videos", withUser(), handler.UploadVideo)

	body, contentType := multipartUpload(t, nil, "squat.mp4", []byte("mp4data"))
	req := httptest.NewRequest(http.MethodPost, "/videos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestUploadDocumentStorageFaultReturnsServerError(t *testing.T) {
	handler := NewAdminHandler(&stubAdminService{}, nil)
	router := gin.New()
	router.POST("/enrollments/:id/documents", handler.UploadDocument)

	body, contentType := multipartUpload(t, map[string]string{"type": "DIET"}, "diet.pdf", []byte("pdfdata"))
	url := "/enrollments/" + primitive.NewObjectID().Hex() + "/documents"
	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestCatalogOutageReturnsServerError(t *testing.T) {
	handler := NewCatalogHandler(&stubCatalogService{}, nil)
	router := gin.New()
	router.GET("/exercises", handler.ListExercises)

	req := httptest.NewRequest(http.MethodGet, "/exercises", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
