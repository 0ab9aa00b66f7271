package config

// config module holds server configuration parameters and defaults

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// Config stores server configuration parameters
type Config struct {
	Port          int      `json:"port"`           // server port number
	Base          string   `json:"base"`           // base URL
	LogFile       string   `json:"log_file"`       // server log file
	Verbose       int      `json:"verbose"`        // verbose output
	LimiterPeriod string   `json:"rate"`           // github.com/ulule/limiter rate value
	UploadDir     string   `json:"upload_dir"`     // staging area for uploaded images
	ModelPaths    []string `json:"model_paths"`    // ordered candidate locations of the model artifact
	MetadataFile  string   `json:"metadata_file"`  // optional model metadata file
	MaxBodySize   int64    `json:"max_body_size"`  // request body limit in bytes
}

// Parse reads the given configuration file and applies default values.
// An empty file name yields a configuration with defaults only.
func Parse(configFile string) (*Config, error) {
	var config Config
	if configFile != "" {
		data, err := os.ReadFile(filepath.Clean(configFile))
		if err != nil {
			log.Println("Unable to read", err)
			return nil, err
		}
		if err := json.Unmarshal(data, &config); err != nil {
			log.Println("Unable to parse", err)
			return nil, err
		}
	}

	// default values
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.LimiterPeriod == "" {
		config.LimiterPeriod = "100-S"
	}
	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}
	if len(config.ModelPaths) == 0 {
		config.ModelPaths = []string{
			"models/face_mask_detection_model.onnx",
			"../models/face_mask_detection_model.onnx",
			"../../models/face_mask_detection_model.onnx",
		}
	}
	if config.MetadataFile == "" {
		config.MetadataFile = "models/model_metadata.json"
	}
	if config.MaxBodySize == 0 {
		config.MaxBodySize = 16 << 20
	}
	return &config, nil
}
