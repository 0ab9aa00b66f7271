package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/tarushi-31/smartOffice-pro/internal/config"
	"github.com/tarushi-31/smartOffice-pro/internal/handlers"
	"github.com/tarushi-31/smartOffice-pro/internal/logging"
	"github.com/tarushi-31/smartOffice-pro/internal/model"
	"github.com/tarushi-31/smartOffice-pro/internal/storage"
)

// version of the code
var version string

// helper function to return version string of the server
func info() string {
	goVersion := runtime.Version()
	tstamp := time.Now().Format("2006-01-02")
	return fmt.Sprintf("ai-prediction-service git=%s go=%s date=%s", version, goVersion, tstamp)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "configuration file")
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version information about the server")
	flag.Parse()
	if showVersion {
		fmt.Println(info())
		os.Exit(0)
	}

	cfg, err := config.Parse(configFile)
	if err != nil {
		log.Fatalf("unable to parse config %s, error %v", configFile, err)
	}

	if err := logging.Setup(cfg.LogFile, cfg.Verbose); err != nil {
		log.Fatalf("unable to set up logging, error %v", err)
	}
	if cfg.Verbose > 0 {
		log.Printf("%+v", cfg)
	}

	// load once at startup; no model is degraded mode, not fatal
	handle := model.NewHandle(cfg.MetadataFile)
	if handle.Load(cfg.ModelPaths) {
		log.Printf("Classes: %v", handle.Metadata.Classes)
	} else {
		log.Printf("no model artifact found in %v, running degraded; prediction endpoints will report the missing model", cfg.ModelPaths)
	}
	defer handle.Close()

	staging, err := storage.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("unable to create upload directory %s, error %v", cfg.UploadDir, err)
	}

	handlers.InitLimiter(cfg.LimiterPeriod)
	handler := handlers.New(handle, staging, cfg.MaxBodySize)
	router := handler.Router(cfg.Base)

	port := cfg.Port
	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}
	log.Printf("Server starting on port %d", port)
	log.Println("Endpoints:")
	log.Println("  GET  /health - Health check")
	log.Println("  POST /upload - Predict from image upload")
	log.Println("  POST /webcam - Predict from base64 camera frame")

	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
