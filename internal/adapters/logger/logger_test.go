package logger_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"go.trai.ch/licache/internal/adapters/logger"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	// Save the original stderr
	originalStderr := os.Stderr

	// Create a pipe to capture stderr
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	// Replace os.Stderr with the write end of the pipe
	os.Stderr = w

	// Create a channel to signal when reading is complete
	done := make(chan string, 1)

	// Start reading in a goroutine
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	// Execute the function
	fn()

	// Close the write end of the pipe to signal EOF to the reader
	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}

	// Wait for the reading to complete
	output := <-done

	// Close the read end
	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}

	// Restore the original stderr
	os.Stderr = originalStderr

	return output, nil
}

func TestLogger_Info(t *testing.T) {
	// Capture stderr output
	output, err := captureStderr(func() {
		// Create the logger inside the capture function so it uses the redirected stderr
		lg := logger.New()
		lg.Info("some message", "app", "demo")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "some message") {
		t.Errorf("Expected output to contain 'some message', got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", output)
	}
	if !strings.Contains(output, "app=demo") {
		t.Errorf("Expected output to contain 'app=demo', got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.Error(os.ErrPermission, "path", "/tmp/x")

	output := buf.String()
	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
	if !strings.Contains(output, "path=/tmp/x") {
		t.Errorf("Expected output to contain 'path=/tmp/x', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	lg.Warn("some warning")

	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("Expected output to contain 'WARN', got: %s", buf.String())
	}
}

func TestLogger_Debug_Verbose(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)

	lg.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Expected debug records to be dropped by default, got: %s", buf.String())
	}

	lg.SetVerbose(true)
	lg.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected output to contain 'shown', got: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	scoped := lg.With("run_id", "01J")

	scoped.Error(errors.New("boom"))
	if !strings.Contains(buf.String(), "run_id=01J") {
		t.Errorf("Expected output to contain 'run_id=01J', got: %s", buf.String())
	}

	lg.SetVerbose(true)
	scoped.Debug("shared level")
	if !strings.Contains(buf.String(), "shared level") {
		t.Errorf("Expected the scoped logger to follow SetVerbose, got: %s", buf.String())
	}

	buf.Reset()
	lg.Info("plain")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("Expected the parent logger to stay untagged, got: %s", buf.String())
	}
}
