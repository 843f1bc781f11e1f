package fileutils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/mrnavastar/launchman/util"
	"golang.org/x/sync/errgroup"
)

// FetchTask is one verified download: source URL, final destination and
// the expected SHA-1 of the content. A task whose destination already
// matches is a no-op.
type FetchTask struct {
	Url  string
	Dest string
	Sha1 string
	Size int64
}

// ProgressFunc receives cumulative bytes transferred across a batch
// after every chunk, and a final (total, total) once the batch settles.
type ProgressFunc func(done int64, total int64)

// WriteCounter tallies bytes across a download batch. Workers feed it
// concurrently; the mutex keeps the tally consistent and means Progress
// is never invoked from two goroutines at once, so callbacks may hold
// plain state.
type WriteCounter struct {
	Done     *int64
	Total    int64
	Progress ProgressFunc

	mu sync.Mutex
}

func (wc *WriteCounter) Write(p []byte) (int, error) {
	wc.Add(int64(len(p)))
	return len(p), nil
}

func (wc *WriteCounter) Add(n int64) {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	*wc.Done += n
	if wc.Progress != nil {
		wc.Progress(*wc.Done, wc.Total)
	}
}

func HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha1.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// DownloadFile fetches one task. The body streams to a uniquely named
// sibling temp file which is renamed onto the destination only after
// the hash checks out; on mismatch the temp file is deleted and the
// destination is left untouched. Unique temp names keep concurrent
// tasks for the same destination from truncating each other.
func DownloadFile(task FetchTask, counter *WriteCounter) error {
	if task.Sha1 != "" {
		if existing, err := HashFile(task.Dest); err == nil && existing == task.Sha1 {
			if counter != nil {
				counter.Add(task.Size)
			}
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(task.Dest), 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", util.ErrFilesystem, filepath.Dir(task.Dest), err)
	}

	resp, err := http.Get(task.Url)
	if err != nil {
		return fmt.Errorf("%w: get %s: %v", util.ErrNetwork, task.Url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: get %s: status %s", util.ErrNetwork, task.Url, resp.Status)
	}

	file, err := os.CreateTemp(filepath.Dir(task.Dest), filepath.Base(task.Dest)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", util.ErrFilesystem, task.Dest, err)
	}
	tmp := file.Name()

	var body io.Reader = resp.Body
	if counter != nil {
		body = io.TeeReader(resp.Body, counter)
	}
	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: download %s: %v", util.ErrNetwork, task.Url, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: close %s: %v", util.ErrFilesystem, tmp, err)
	}

	if task.Sha1 != "" {
		actual, err := HashFile(tmp)
		if err != nil {
			os.Remove(tmp)
			return fmt.Errorf("%w: hash %s: %v", util.ErrFilesystem, tmp, err)
		}
		if actual != task.Sha1 {
			os.Remove(tmp)
			return fmt.Errorf("%w: %s: expected %s, got %s", util.ErrHashMismatch, task.Dest, task.Sha1, actual)
		}
	}

	if err := os.Rename(tmp, task.Dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: move %s into place: %v", util.ErrFilesystem, task.Dest, err)
	}
	return nil
}

// DownloadAll runs up to concurrency tasks at once. No task cancels its
// siblings: every task settles before the call returns, and failures
// aggregate into one DownloadError carrying the count and the first
// error in submission order.
func DownloadAll(tasks []FetchTask, concurrency int, progress ProgressFunc) error {
	if len(tasks) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var total int64
	for _, task := range tasks {
		total += task.Size
	}

	var done int64
	counter := &WriteCounter{Done: &done, Total: total, Progress: progress}

	errs := make([]error, len(tasks))
	var group errgroup.Group
	group.SetLimit(concurrency)
	for i, task := range tasks {
		i, task := i, task
		group.Go(func() error {
			errs[i] = DownloadFile(task, counter)
			return nil
		})
	}
	group.Wait()

	failed := 0
	var first error
	for _, err := range errs {
		if err != nil {
			failed++
			if first == nil {
				first = err
			}
		}
	}
	if failed > 0 {
		return &util.DownloadError{Failed: failed, First: first}
	}

	if progress != nil {
		progress(total, total)
	}
	return nil
}
