package service

// service module orchestrates the inference pipeline for one request:
// decode -> normalize -> infer -> result shaping

import (
	"errors"
	"fmt"
	"image"

	"github.com/tarushi-31/smartOffice-pro/internal/imaging"
)

const (
	// LabelNoMask is the class at index 0 of the probability vector
	LabelNoMask = "Not Wearing Mask"
	// LabelMask is the class at index 1 of the probability vector
	LabelMask = "Wearing Mask"
)

var (
	// ErrModelUnavailable reports that no classifier artifact is
	// loaded; operators need to train and deploy a model first
	ErrModelUnavailable = errors.New("model not loaded, please train the model first")
	// ErrInference reports an unexpected failure inside the classifier
	ErrInference = errors.New("error during prediction")
)

// Classifier is the read-only inference capability shared by all
// in-flight requests.
type Classifier interface {
	Loaded() bool
	Infer(inputData []float32) ([]float32, error)
}

// Prediction is the shaped classification result returned to callers
type Prediction struct {
	Label             string  `json:"label"`
	Confidence        float64 `json:"confidence"`
	MaskProbability   float64 `json:"mask_probability"`
	NoMaskProbability float64 `json:"no_mask_probability"`
}

// Service runs the inference pipeline. It is stateless apart from the
// shared classifier handle and safe for concurrent use.
type Service struct {
	classifier Classifier
	// decode is a hook point for tests, imaging.Decode otherwise
	decode func(path string) (image.Image, error)
}

func New(classifier Classifier) *Service {
	return &Service{
		classifier: classifier,
		decode:     imaging.Decode,
	}
}

// Run classifies the image staged at the given path. The model
// availability check runs before any decode work, so an unloaded
// classifier short-circuits without touching the file.
func (s *Service) Run(imagePath string) (*Prediction, error) {
	if !s.classifier.Loaded() {
		return nil, ErrModelUnavailable
	}

	img, err := s.decode(imagePath)
	if err != nil {
		return nil, err
	}

	inputData := imaging.Normalize(img)

	probs, err := s.classifier.Infer(inputData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	if len(probs) < 2 {
		return nil, fmt.Errorf("%w: unexpected output length %d", ErrInference, len(probs))
	}

	return shape(probs), nil
}

// shape maps the raw probability pair onto the result record. The
// label follows argmax over the two classes; an exact tie resolves to
// index 0, LabelNoMask.
func shape(probs []float32) *Prediction {
	noMaskProb := float64(probs[0])
	maskProb := float64(probs[1])

	label := LabelNoMask
	confidence := noMaskProb
	if maskProb > noMaskProb {
		label = LabelMask
		confidence = maskProb
	}

	return &Prediction{
		Label:             label,
		Confidence:        confidence,
		MaskProbability:   maskProb,
		NoMaskProbability: noMaskProb,
	}
}
