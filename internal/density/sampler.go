// Package density measures per-lane vehicle counts by running an
// external detection pipeline against each lane's camera stream for a
// bounded window.
package density

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/config"
	"github.com/AI-Gajendra/traffic-backend/internal/logging"
)

var logger = logging.New("density")

const killGrace = 3 * time.Second

// ScriptSampler launches the configured detection command once per
// Sample call, in its own process group, and reads its output for the
// sampling window. A Sample call blocks for at most the window plus
// process-teardown time; it is deliberately not tied to the caller's
// cancellation, so a mode switch waits out at most one window.
type ScriptSampler struct {
	command string
	window  time.Duration
	streams map[string]string
}

func NewScriptSampler(command string, window time.Duration, lanes []config.Lane) *ScriptSampler {
	streams := make(map[string]string, len(lanes))
	for _, lane := range lanes {
		streams[lane.ID] = lane.StreamURL
	}
	return &ScriptSampler{
		command: command,
		window:  window,
		streams: streams,
	}
}

// Sample counts vehicles on one lane. "No detections" is 0, not an
// error; errors mean the detection process could not be run at all.
func (s *ScriptSampler) Sample(lane string) (int, error) {
	url, ok := s.streams[lane]
	if !ok {
		return 0, fmt.Errorf("no stream configured for lane %q", lane)
	}
	if s.command == "" {
		return 0, fmt.Errorf("no detection command configured")
	}

	cmd := exec.Command("/bin/sh", "-c", strings.ReplaceAll(s.command, "{url}", url))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("detection pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start detection: %w", err)
	}

	quit := make(chan struct{})
	defer close(quit)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-quit:
				return
			}
		}
	}()

	count := 0
	deadline := time.NewTimer(s.window)
	defer deadline.Stop()
read:
	for {
		select {
		case line, open := <-lines:
			if !open {
				break read
			}
			if n, tally := ParseVehicleLine(line); tally {
				count = n
			}
		case <-deadline.C:
			break read
		}
	}

	s.stop(cmd, lane)
	logger.With(zap.String("lane", lane), zap.Int("count", count)).Info("sampling window complete")
	return count, nil
}

// stop interrupts the detection process group and escalates to SIGTERM
// then SIGKILL if it does not exit within the kill grace.
func (s *ScriptSampler) stop(cmd *exec.Cmd, lane string) {
	pgid, pgErr := syscall.Getpgid(cmd.Process.Pid)
	signalGroup := func(sig syscall.Signal) {
		if pgErr == nil {
			_ = syscall.Kill(-pgid, sig)
		} else {
			_ = cmd.Process.Signal(sig)
		}
	}

	signalGroup(syscall.SIGINT)

	waited := make(chan error, 1)
	go func() { waited <- cmd.Wait() }()

	select {
	case <-waited:
		return
	case <-time.After(killGrace):
		signalGroup(syscall.SIGTERM)
	}

	select {
	case <-waited:
	case <-time.After(killGrace):
		logger.With(zap.String("lane", lane)).Warn("detection process ignored SIGTERM, killing")
		_ = cmd.Process.Kill()
		<-waited
	}
}
