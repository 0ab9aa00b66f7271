package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tarushi-31/smartOffice-pro/internal/imaging"
	"github.com/tarushi-31/smartOffice-pro/internal/service"
	"github.com/tarushi-31/smartOffice-pro/internal/storage"
)

// ServiceName identifies this service in health responses
const ServiceName = "ai-prediction-service"

// allowedExtensions is the raster-image extension whitelist for uploads
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type Handler struct {
	classifier  service.Classifier
	svc         *service.Service
	staging     *storage.Staging
	maxBodySize int64
}

func New(classifier service.Classifier, staging *storage.Staging, maxBodySize int64) *Handler {
	return &Handler{
		classifier:  classifier,
		svc:         service.New(classifier),
		staging:     staging,
		maxBodySize: maxBodySize,
	}
}

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Service     string `json:"service"`
}

type uploadResponse struct {
	Success    bool                `json:"success"`
	Prediction *service.Prediction `json:"prediction"`
	Image      string              `json:"image"`
	Filename   string              `json:"filename"`
}

type webcamRequest struct {
	Image string `json:"image"`
}

type webcamResponse struct {
	Success    bool                `json:"success"`
	Prediction *service.Prediction `json:"prediction"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// helper function to serialize a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("unable to encode response, error %v", err)
	}
}

// helper function to emit a uniform {error: message} reply
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps pipeline errors onto HTTP status codes: bad input is
// the client's fault, a missing model or a failing classifier is ours
func statusFor(err error) int {
	if errors.Is(err, imaging.ErrDecode) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Health reports process liveness and whether a model is loaded; it
// always answers 200, degraded mode included
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "healthy",
		ModelLoaded: h.classifier.Loaded(),
		Service:     ServiceName,
	})
}

// Info lists the available endpoints
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": ServiceName,
		"endpoints": map[string]string{
			"GET /health":  "health check",
			"POST /upload": "predict from multipart file upload",
			"POST /webcam": "predict from base64 camera frame",
		},
	})
}

// Upload handles multipart file uploads. The staged artifact is
// released on every exit path once created.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := r.ParseMultipartForm(h.maxBodySize); err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	stagedPath, err := h.staging.Stage(header.Filename, data)
	if err != nil {
		log.Printf("unable to stage upload, error %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}
	defer h.staging.Release(stagedPath)

	prediction, err := h.svc.Run(stagedPath)
	if err != nil {
		log.Printf("prediction error: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	// echo the classified image back so the caller can display it;
	// the read has to happen before the deferred release
	staged, err := os.ReadFile(stagedPath)
	if err != nil {
		log.Printf("unable to re-read staged file %s, error %v", stagedPath, err)
		writeError(w, http.StatusInternalServerError, "Failed to read staged file")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:    true,
		Prediction: prediction,
		Image:      base64.StdEncoding.EncodeToString(staged),
		Filename:   storage.Sanitize(header.Filename),
	})
}

// Webcam handles inline base64 camera frames, e.g.
// {"image": "data:image/jpeg;base64,<payload>"}
func (h *Handler) Webcam(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req webcamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		writeError(w, http.StatusBadRequest, "No image data received")
		return
	}

	// strip the data-URI scheme/MIME header, if any
	payload := req.Image
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image data")
		return
	}

	stagedPath, err := h.staging.Stage("webcam.jpg", data)
	if err != nil {
		log.Printf("unable to stage webcam frame, error %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	defer h.staging.Release(stagedPath)

	prediction, err := h.svc.Run(stagedPath)
	if err != nil {
		log.Printf("webcam prediction error: %v", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, webcamResponse{
		Success:    true,
		Prediction: prediction,
	})
}
