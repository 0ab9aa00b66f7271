package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ErrNotLoaded reports an inference attempt against an unloaded handle
var ErrNotLoaded = errors.New("no model artifact loaded")

// Handle owns at most one loaded classifier artifact for the process
// lifetime. An unloaded handle is a valid state: the service keeps
// running in degraded mode and Infer reports ErrNotLoaded.
type Handle struct {
	// the ONNX session owns pre-allocated input/output tensors, so
	// concurrent Infer calls are serialized with mu
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	Metadata     Metadata
}

// NewHandle creates an unloaded handle. The metadata file is optional;
// when missing or unreadable the classifier defaults describing the
// face-mask artifact are used.
func NewHandle(metadataPath string) *Handle {
	metadata := DefaultMetadata()
	if metadataPath != "" {
		if data, err := os.ReadFile(metadataPath); err == nil {
			if err := json.Unmarshal(data, &metadata); err != nil {
				log.Printf("unable to parse metadata %s, error %v, using defaults", metadataPath, err)
				metadata = DefaultMetadata()
			}
		}
	}
	return &Handle{Metadata: metadata}
}

// Load tries each candidate path in order and loads the first artifact
// that exists and opens cleanly. A failure on one path means trying the
// next. It returns whether a model is now loaded; all-candidates-fail
// is not fatal, the handle simply stays unloaded.
func (h *Handle) Load(candidates []string) bool {
	if err := ort.InitializeEnvironment(); err != nil {
		log.Printf("failed to initialize ONNX environment: %v", err)
		return false
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := h.loadArtifact(path); err != nil {
			log.Printf("unable to load model from %s, error %v", path, err)
			continue
		}
		log.Printf("model loaded from %s", path)
		return true
	}
	return false
}

// Loaded reports whether the handle holds a usable model
func (h *Handle) Loaded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session != nil
}

func (h *Handle) loadArtifact(modelPath string) error {
	inputShape := ort.NewShape(h.Metadata.InputShape...)
	outputShape := ort.NewShape(h.Metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return fmt.Errorf("failed to create ONNX session: %w", err)
	}

	h.mu.Lock()
	h.session = session
	h.inputTensor = inputTensor
	h.outputTensor = outputTensor
	h.mu.Unlock()
	return nil
}

// Infer runs one forward pass and returns a copy of the per-class
// probability vector. Safe for use by concurrent requests.
func (h *Handle) Infer(inputData []float32) ([]float32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return nil, ErrNotLoaded
	}

	copy(h.inputTensor.GetData(), inputData)

	if err := h.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	outputData := h.outputTensor.GetData()
	probs := make([]float32, len(outputData))
	copy(probs, outputData)
	return probs, nil
}

func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inputTensor != nil {
		h.inputTensor.Destroy()
	}
	if h.outputTensor != nil {
		h.outputTensor.Destroy()
	}
	if h.session != nil {
		h.session.Destroy()
	}
	h.session = nil
	ort.DestroyEnvironment()
}
