package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"urbanserve/database/repository"
	"urbanserve/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateWorkerProfileHandler handles the multipart worker onboarding form.
func CreateWorkerProfileHandler(svc provider.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		price, ok := parsePrice(c)
		if !ok {
			return
		}
		doc, closeDoc, ok := openFormFile(c, "id_document")
		if !ok {
			return
		}
		defer closeDoc()

		input := provider.WorkerProfileInput{
			ServiceType: c.PostForm("service_type"),
			Price:       price,
			IDDocument:  doc,
		}
		profile, err := svc.CreateWorkerProfile(c.Request.Context(), u, input)
		if err != nil {
			var ve provider.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
				return
			}
			logger.Error("Worker profile creation failed", zap.Uint("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile creation failed"})
			return
		}
		c.JSON(http.StatusCreated, profile)
	}
}

// CreateTutorProfileHandler handles the multipart tutor onboarding form.
func CreateTutorProfileHandler(svc provider.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		u := currentUser(c)

		price, ok := parsePrice(c)
		if !ok {
			return
		}
		idDoc, closeID, ok := openFormFile(c, "id_document")
		if !ok {
			return
		}
		defer closeID()
		qualDoc, closeQual, ok := openFormFile(c, "qualification_document")
		if !ok {
			return
		}
		defer closeQual()

		input := provider.TutorProfileInput{
			Subject:               c.PostForm("subject"),
			Price:                 price,
			QualificationText:     c.PostForm("qualification_text"),
			ExperienceDescription: c.PostForm("experience_description"),
			DemoTranscript:        c.PostForm("demo_transcript"),
			IDDocument:            idDoc,
			QualificationDocument: qualDoc,
		}
		profile, err := svc.CreateTutorProfile(c.Request.Context(), u, input)
		if err != nil {
			var ve provider.ValidationError
			if errors.As(err, &ve) {
				c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
				return
			}
			logger.Error("Tutor profile creation failed", zap.Uint("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile creation failed"})
			return
		}
		c.JSON(http.StatusCreated, profile)
	}
}

// GetWorkerProfileHandler returns the caller's own worker profile.
func GetWorkerProfileHandler(svc provider.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		profile, err := svc.GetWorkerProfile(c.Request.Context(), u.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GetTutorProfileHandler returns the caller's own tutor profile.
func GetTutorProfileHandler(svc provider.ProviderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		profile, err := svc.GetTutorProfile(c.Request.Context(), u.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

func parsePrice(c *gin.Context) (float64, bool) {
	raw := c.PostForm("price")
	if raw == "" {
		return 0, true
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a number"})
		return 0, false
	}
	return price, true
}

// openFormFile returns the named upload, a close func and an ok flag. A
// missing file is fine; a present but unreadable one is a 400.
func openFormFile(c *gin.Context, field string) (*provider.Upload, func(), bool) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload for " + field})
		return nil, nil, false
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload for " + field})
		return nil, nil, false
	}
	return &provider.Upload{FileName: header.Filename, Reader: f}, func() { closeMultipart(f) }, true
}

func closeMultipart(f multipart.File) {
	_ = f.Close()
}
