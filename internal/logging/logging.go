package logging

// logging module provides log writers and per-request logging

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

// helper function to produce UTC time prefixed output
func utcMsg(data []byte) string {
	s := string(data)
	v, e := url.QueryUnescape(s)
	if e == nil {
		return v
	}
	return s
}

// custom rotate logger
type rotateLogWriter struct {
	RotateLogs *rotatelogs.RotateLogs
}

func (w rotateLogWriter) Write(data []byte) (int, error) {
	return w.RotateLogs.Write([]byte(utcMsg(data)))
}

// Setup configures the standard logger. When logFile is set the
// output is rotated daily, otherwise logs go to stdout. Verbose
// level adds file name and line number to each record.
func Setup(logFile string, verbose int) error {
	log.SetFlags(0)
	if verbose > 0 {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if logFile == "" {
		return nil
	}
	logName := logName(logFile)
	rl, err := rotatelogs.New(logName)
	if err != nil {
		return err
	}
	log.SetOutput(rotateLogWriter{RotateLogs: rl})
	return nil
}

// logName returns proper log name based on given file and either
// hostname or pod name (used in k8s environment).
func logName(logFile string) string {
	hostname, err := os.Hostname()
	if err != nil {
		log.Println("unable to get hostname", err)
	}
	if os.Getenv("MY_POD_NAME") != "" {
		hostname = os.Getenv("MY_POD_NAME")
	}
	logName := logFile + "_%Y%m%d"
	if hostname != "" {
		logName = fmt.Sprintf("%s_%s", logFile, hostname) + "_%Y%m%d"
	}
	return logName
}

// LogRequest logs a single user request with its status and duration
func LogRequest(r *http.Request, start time.Time, status int) {
	dataMsg := fmt.Sprintf("[data: %v in]", r.ContentLength)
	referer := r.Referer()
	if referer == "" {
		referer = "-"
	}
	refMsg := fmt.Sprintf("[ref: \"%s\" \"%v\"]", referer, r.Header.Get("User-Agent"))
	respMsg := fmt.Sprintf("[req: %v]", time.Since(start))
	uri, err := url.QueryUnescape(r.RequestURI)
	if err != nil {
		log.Println("unable to unescape request uri", err)
		uri = r.RequestURI
	}
	t := time.Now().Format(time.RFC3339)
	log.Printf("%s %s %d %s %s %s %s %s %s\n", t, r.Proto, status, r.RemoteAddr, r.Method, uri, dataMsg, refMsg, respMsg)
}
