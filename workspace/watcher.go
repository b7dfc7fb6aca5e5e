package workspace

import (
	"os"
	"time"
)

// FileWatcher polls the workspace's stylesheets and re-parses the ones
// whose modification time changed.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	// skip reports paths whose content is owned by someone else, such as
	// documents open in an editor.
	skip         func(path string) bool
}

func NewFileWatcher(w *Workspace, skip func(path string) bool) *FileWatcher {
	if skip == nil {
		skip = func(string) bool { return false }
	}
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
		skip:         skip,
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	fw.Scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.Scan()
		}
	}
}

// Scan re-parses new and modified stylesheets and removes the ones that
// disappeared. It returns the number of files updated or removed.
func (fw *FileWatcher) Scan() int {
	files, err := fw.workspace.Config().Stylesheets()
	if err != nil {
		log.Warningf("watch %s: %s", fw.workspace.RootDir(), err)
		return 0
	}

	changed := 0
	current := make(map[string]bool, len(files))
	for _, path := range files {
		current[path] = true
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := fw.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		fw.modTimes[path] = info.ModTime()
		if fw.skip(path) {
			continue
		}
		if err := fw.workspace.ScanFile(path); err != nil {
			log.Warningf("rescan %s: %s", path, err)
			continue
		}
		changed++
	}

	for path := range fw.modTimes {
		if !current[path] {
			delete(fw.modTimes, path)
			if !fw.skip(path) {
				fw.workspace.RemoveFile(path)
				changed++
			}
		}
	}
	return changed
}
