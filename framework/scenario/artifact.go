package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScreenshotMediaType is the media type of screenshot attachments.
const ScreenshotMediaType = "image/png"

// Screen is a source of screenshots; *browser.Session implements it.
type Screen interface {
	Active() bool
	Screenshot() ([]byte, error)
}

// ScreenshotOnFailure returns hooks that attach one screenshot to the scenario for every step
// that fails while a session is active. The source is asked for the current session each time,
// since sessions may be replaced between scenarios. Capture problems are written to the scenario
// log and never change the scenario's outcome.
func ScreenshotOnFailure(source func() Screen) Hooks {
	return Hooks{
		AfterStep: func(sc *Scenario, outcome StepOutcome) {
			if !outcome.Failed() {
				return
			}
			name := fmt.Sprintf("%s - step %d", sc.ID().Name(), outcome.Index)
			data, err := captureScreen(source())
			if err != nil {
				sc.Log().Info((&CaptureError{Name: name, Err: err}).Error())
				return
			}
			sc.Attach(data, ScreenshotMediaType, name)
		},
	}
}

func captureScreen(src Screen) ([]byte, error) {
	if src == nil || !src.Active() {
		return nil, ErrNoSession
	}
	return src.Screenshot()
}

// FileCapture writes named screenshots into a directory, for captures that are not triggered by
// a failure.
type FileCapture struct {
	Dir string

	// Now, if set, replaces time.Now for the timestamp in file names.
	Now func() time.Time
}

// Capture writes a screenshot to "<name>_<epoch millis>.png" in the capture directory and returns
// the path. Any directory or extension in name is dropped, and a name with nothing left is
// rejected.
func (c FileCapture) Capture(src Screen, name string) (string, error) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", &CaptureError{Name: fmt.Sprintf("%q", name), Err: ErrInvalidCaptureName}
	}
	data, err := captureScreen(src)
	if err != nil {
		return "", &CaptureError{Name: base, Err: err}
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil { //nolint:gosec
		return "", &CaptureError{Name: base, Err: err}
	}
	path := filepath.Join(c.Dir, fmt.Sprintf("%s_%d.png", base, now().UnixMilli()))
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return "", &CaptureError{Name: base, Err: err}
	}
	return path, nil
}
