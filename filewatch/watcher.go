package filewatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/aguxez/fitplan/models"
)

// ProfileSink receives profiles dropped into the profile directory.
type ProfileSink interface {
	Submit(u models.User) (models.CalorieResults, error)
}

// Dirs are the directories the watcher reacts to. An empty entry is not
// watched.
type Dirs struct {
	Foods   string
	Profile string
}

// FileWatcher monitors directory changes
type FileWatcher struct {
	dirs    Dirs
	pantry  *models.Pantry
	sink    ProfileSink
	watcher *fsnotify.Watcher
}

func NewFileWatcher(dirs Dirs, pantry *models.Pantry, sink ProfileSink) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, path := range []string{dirs.Foods, dirs.Profile} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			w.Close()
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
		if err := w.Add(path); err != nil {
			w.Close()
			return nil, fmt.Errorf("watching %s: %w", path, err)
		}
	}

	return &FileWatcher{dirs: dirs, pantry: pantry, sink: sink, watcher: w}, nil
}

// LoadExisting handles every file already present, in lexical order.
func (fw *FileWatcher) LoadExisting() error {
	for _, dir := range []string{fw.dirs.Foods, fw.dirs.Profile} {
		if dir == "" {
			continue
		}
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			fw.HandleFileChange(path)
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	return nil
}

// Watch blocks until Close is called.
func (fw *FileWatcher) Watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				log.WithField("file", event.Name).Debug("Modified file")
				fw.HandleFileChange(event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Error("File watcher error")
		}
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

func (fw *FileWatcher) HandleFileChange(path string) {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	logger := log.WithField("file", path)

	switch {
	case fw.dirs.Foods != "" && sameDir(dir, fw.dirs.Foods) && ext == ".csv":
		foods, err := ParseFoods(path)
		if err != nil {
			logger.WithError(err).Error("Error parsing foods")
			return
		}
		fw.pantry.UpdateFoods(foods)
		logger.WithField("foods", len(foods)).Info("Pantry updated")

	case fw.dirs.Profile != "" && sameDir(dir, fw.dirs.Profile) && (ext == ".yaml" || ext == ".yml"):
		user, err := ParseProfile(path)
		if err != nil {
			logger.WithError(err).Error("Error parsing profile")
			return
		}
		if _, err := fw.sink.Submit(user); err != nil {
			logger.WithError(err).Warn("Profile not applied")
			return
		}
		logger.Info("Profile submitted")
	}
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
