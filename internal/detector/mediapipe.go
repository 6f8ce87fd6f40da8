package detector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handglow/internal/log"
)

const serviceScript = "scripts/hand_landmarks.py"

// ErrServiceNotFound is returned when no landmark service script exists.
var ErrServiceNotFound = errors.New("landmark service not found")

// MediaPipeDetector runs the MediaPipe hand landmarker in a Python child
// process. The process starts on the first Detect, stops after the idle
// timeout and is restarted after a broken exchange.
type MediaPipeDetector struct {
	config Config
	python string
	script string

	// idleGen identifies the latest armed idle timer.
	mu      sync.Mutex
	proc    *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	idle    *time.Timer
	idleGen uint64
}

// NewMediaPipeDetector locates the service script and interpreter. No
// process is started yet.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	script := config.Script
	if script == "" {
		script = firstExisting(searchPaths(serviceScript, ".handglow/"+serviceScript))
	}
	if script == "" {
		return nil, ErrServiceNotFound
	}

	python := config.Python
	if python == "" {
		python = firstExisting(searchPaths("venv/bin/python", ".handglow/venv/bin/python"))
	}
	if python == "" {
		python = "python3"
	}

	return &MediaPipeDetector{config: config, python: python, script: script}, nil
}

// Detect sends frame to the service and waits for its reply.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if frame == nil || frame.Empty() {
		return nil, nil
	}

	data, err := encodeFrame(frame, d.config.FrameWidth)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.start(); err != nil {
		return nil, err
	}

	hands, err := d.exchange(data)
	if err != nil {
		// The pipe is in an unknown state; the next call starts afresh.
		if serr := d.stop(); serr != nil {
			log.Debug("landmark service exit", "error", serr)
		}
		return nil, err
	}

	d.touch()
	return hands, nil
}

func (d *MediaPipeDetector) exchange(data []byte) ([]HandLandmarks, error) {
	if err := writeFrame(d.stdin, data); err != nil {
		return nil, err
	}
	line, err := d.stdout.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read landmarks: %w", err)
	}
	return ParseHands(line)
}

// Close stops the service if it is running.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop()
}

func (d *MediaPipeDetector) start() error {
	if d.proc != nil {
		return nil
	}

	cmd := exec.Command(d.python, d.script,
		"--max-hands", strconv.Itoa(d.config.MaxHands),
		"--min-detection-confidence", strconv.FormatFloat(d.config.MinDetection, 'f', 2, 64),
		"--min-tracking-confidence", strconv.FormatFloat(d.config.MinTracking, 'f', 2, 64),
	)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("landmark service stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("landmark service stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start landmark service: %w", err)
	}

	d.proc = cmd
	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	log.Info("landmark service started", "python", d.python, "script", d.script, "pid", cmd.Process.Pid)
	return nil
}

func (d *MediaPipeDetector) stop() error {
	if d.idle != nil {
		d.idle.Stop()
		d.idle = nil
	}
	if d.proc == nil {
		return nil
	}

	d.stdin.Close()
	err := d.proc.Wait()
	d.proc, d.stdin, d.stdout = nil, nil, nil
	return err
}

// touch rearms the idle timer. A timer that already fired and is waiting
// for the lock sees a newer generation and leaves the service running.
func (d *MediaPipeDetector) touch() {
	if d.config.IdleTimeout <= 0 {
		return
	}
	if d.idle != nil {
		d.idle.Stop()
	}
	d.idleGen++
	gen := d.idleGen
	d.idle = time.AfterFunc(d.config.IdleTimeout, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.expire(gen)
	})
}

// expire stops the service if gen is still the current idle generation.
// Callers hold mu.
func (d *MediaPipeDetector) expire(gen uint64) bool {
	if gen != d.idleGen {
		return false
	}
	if err := d.stop(); err != nil {
		log.Warn("landmark service exited", "error", err)
	} else {
		log.Info("landmark service idle, stopped")
	}
	return true
}

// searchPaths lists rel under the working directory, its parents, the
// executable's directory and home/homeRel.
func searchPaths(rel, homeRel string) []string {
	paths := []string{rel, filepath.Join("..", rel), filepath.Join("..", "..", rel)}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), rel))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, homeRel))
	}
	return paths
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}
