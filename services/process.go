package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mrnavastar/launchman/util"
	"github.com/pterm/pterm"
)

type ProcessState int

const (
	Starting ProcessState = iota
	Running
	Exited
	Killed
	Failed
)

func (s ProcessState) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Killed:
		return "killed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Status is a snapshot of a supervised process.
type Status struct {
	State    ProcessState
	ExitCode int
	Reason   string
	Pid      int
}

// GameProcess owns one spawned game. Output is drained continuously and
// forwarded line by line on Lines; the handle reaches exactly one
// terminal state and is discarded by the caller afterwards.
type GameProcess struct {
	mu       sync.RWMutex
	cmd      *exec.Cmd
	state    ProcessState
	killed   bool
	exitCode int
	reason   string
	pid      int
	dir      string
	account  util.Account
	lines    chan string
	done     chan struct{}
}

// Spawn starts the executable in dir and begins draining its output. A
// spawn failure is fatal to the launch attempt, no handle is returned.
func Spawn(executable string, args []string, dir string, account util.Account) (*GameProcess, error) {
	process := &GameProcess{
		state:   Starting,
		dir:     dir,
		account: account,
		lines:   make(chan string, 512),
		done:    make(chan struct{}),
	}

	cmd := exec.Command(executable, args...)
	cmd.Dir = dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrLaunch, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrLaunch, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrLaunch, err)
	}

	process.cmd = cmd
	process.pid = cmd.Process.Pid
	process.state = Running

	var drained sync.WaitGroup
	drained.Add(2)
	go process.drain(stdout, &drained)
	go process.drain(stderr, &drained)

	go func() {
		drained.Wait()
		err := cmd.Wait()
		process.mu.Lock()
		switch {
		case process.killed:
			process.state = Killed
		case err == nil:
			process.state = Exited
			process.exitCode = 0
		case cmd.ProcessState != nil:
			process.state = Exited
			process.exitCode = cmd.ProcessState.ExitCode()
		default:
			process.state = Failed
			process.reason = err.Error()
		}
		process.mu.Unlock()
		close(process.lines)
		close(process.done)
	}()

	return process, nil
}

func (p *GameProcess) drain(pipe io.Reader, drained *sync.WaitGroup) {
	defer drained.Done()
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		default:
			// Drop rather than stall the pipe when nobody consumes.
		}
	}
}

// Wait blocks until natural termination and returns the terminal
// status. A wait failure surfaces as ErrProcessWait, it is not retried.
func (p *GameProcess) Wait() (Status, error) {
	<-p.done
	status := p.Status()
	if status.State == Failed {
		return status, fmt.Errorf("%w: %s", util.ErrProcessWait, status.Reason)
	}
	return status, nil
}

// Kill requests termination and blocks until the process has actually
// exited. Killing a handle with no tracked process fails with
// ErrNoProcess instead of panicking.
func (p *GameProcess) Kill() error {
	p.mu.Lock()
	if p.state != Running || p.cmd == nil || p.cmd.Process == nil {
		p.mu.Unlock()
		return util.ErrNoProcess
	}
	p.killed = true
	proc := p.cmd.Process
	p.mu.Unlock()

	if err := proc.Kill(); err != nil {
		pterm.Warning.Println("failed to kill process: " + err.Error())
	}
	<-p.done
	return nil
}

func (p *GameProcess) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{State: p.state, ExitCode: p.exitCode, Reason: p.reason, Pid: p.pid}
}

func (p *GameProcess) Dir() string {
	return p.dir
}

func (p *GameProcess) Account() util.Account {
	return p.account
}

// Lines streams the process output, one line per element, closed on
// exit.
func (p *GameProcess) Lines() <-chan string {
	return p.lines
}

// ReadLogs returns the current content of logs/latest.log, empty when
// the game has not written one yet.
func (p *GameProcess) ReadLogs() (string, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, "logs", "latest.log"))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read logs: %v", util.ErrFilesystem, err)
	}
	return string(data), nil
}

func (p *GameProcess) ListCrashReports() ([]string, error) {
	return ListCrashReports(p.dir)
}

// ListCrashReports returns the .txt crash reports of an instance, most
// recent first.
func ListCrashReports(dir string) ([]string, error) {
	crashDir := filepath.Join(dir, "crash-reports")
	entries, err := os.ReadDir(crashDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", util.ErrFilesystem, crashDir, err)
	}

	type report struct {
		path     string
		modified time.Time
	}
	var reports []report
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, report{filepath.Join(crashDir, entry.Name()), info.ModTime()})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].modified.After(reports[j].modified)
	})

	paths := make([]string, 0, len(reports))
	for _, r := range reports {
		paths = append(paths, r.path)
	}
	return paths, nil
}
