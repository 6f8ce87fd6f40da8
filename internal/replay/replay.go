// Package replay plays recorded landmark sessions. A session is a JSON Lines
// file in the landmark service wire format, one reply per frame. A few
// sessions are built in; others can be loaded from disk.
package replay

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/handglow/internal/detector"
)

//go:embed sessions/*.jsonl
var sessionsFS embed.FS

// Session is a recorded sequence of detector results. An entry may be
// empty when no hand was seen.
type Session [][]detector.HandLandmarks

// Read parses a session from r.
func Read(r io.Reader) (Session, error) {
	var frames Session
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		hands, err := detector.ParseHands(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		frames = append(frames, hands)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Builtin loads an embedded session by name, without the extension.
func Builtin(name string) (Session, error) {
	data, err := sessionsFS.ReadFile("sessions/" + name + ".jsonl")
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", name, err)
	}
	s, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", name, err)
	}
	return s, nil
}

// Load resolves ref as a built-in session name first, then as a file path.
func Load(ref string) (Session, error) {
	if s, err := Builtin(ref); err == nil {
		return s, nil
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", ref, err)
	}
	return s, nil
}

// Names lists the built-in sessions.
func Names() []string {
	entries, err := fs.ReadDir(sessionsFS, "sessions")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	return names
}

// Detector returns one session frame per Detect call, ignoring the image,
// and starts over at the end.
type Detector struct {
	mu      sync.Mutex
	session Session
	next    int
}

// NewDetector plays s in a loop.
func NewDetector(s Session) *Detector {
	return &Detector{session: s}
}

func (d *Detector) Detect(*gocv.Mat) ([]detector.HandLandmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.session) == 0 {
		return nil, nil
	}
	hands := d.session[d.next]
	d.next = (d.next + 1) % len(d.session)
	return hands, nil
}

func (d *Detector) Close() error { return nil }

var _ detector.Detector = (*Detector)(nil)
