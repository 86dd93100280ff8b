package pkg

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Workspace es el directorio temporal de una peticion. Cada peticion tiene el
// suyo, asi dos descargas simultaneas nunca comparten ficheros.
type Workspace struct {
	Dir  string
	once sync.Once
}

// NewWorkspace crea <root>/<uuid>
func NewWorkspace(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create temp root %s", root)
	}
	dir := filepath.Join(root, uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create workspace %s", dir)
	}
	return &Workspace{Dir: dir}, nil
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Remove borra el directorio. Se puede llamar varias veces.
func (w *Workspace) Remove() {
	w.once.Do(func() {
		if err := os.RemoveAll(w.Dir); err != nil {
			log.WithError(err).WithField("dir", w.Dir).Warn("failed to remove workspace")
			return
		}
		log.WithField("dir", w.Dir).Debug("workspace removed")
	})
}

// Open abre un fichero del workspace. Al cerrarlo se borra el workspace entero.
func (w *Workspace) Open(name string) (*CleanupFile, int64, error) {
	f, err := os.Open(w.Path(name))
	if err != nil {
		return nil, 0, errors.Wrapf(err, "open %s", name)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, errors.Wrapf(err, "stat %s", name)
	}
	return &CleanupFile{File: f, ws: w}, info.Size(), nil
}

// CleanupFile borra su workspace al cerrarse. fasthttp cierra el body stream
// cuando termina de enviar la respuesta.
type CleanupFile struct {
	*os.File
	ws *Workspace
}

func (f *CleanupFile) Close() error {
	err := f.File.Close()
	f.ws.Remove()
	return err
}

// Janitor borra workspaces viejos que quedaron por una caida del proceso
type Janitor struct {
	Root     string
	MaxAge   time.Duration
	Interval time.Duration
	now      func() time.Time
}

func NewJanitor(root string, maxAge, interval time.Duration) *Janitor {
	return &Janitor{Root: root, MaxAge: maxAge, Interval: interval, now: time.Now}
}

// Sweep borra los workspaces mas antiguos que MaxAge. Solo toca directorios
// cuyo nombre es un uuid.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "read %s", j.Root)
	}
	cutoff := j.now().Add(-j.MaxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := uuid.Parse(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.Root, e.Name())
		if err := os.RemoveAll(path); err != nil {
			log.WithError(err).WithField("dir", path).Warn("failed to remove stale workspace")
			continue
		}
		removed++
	}
	return removed, nil
}

// Run barre al arrancar y despues cada Interval hasta que se cancele ctx
func (j *Janitor) Run(ctx context.Context) {
	j.sweepAndLog()
	if j.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweepAndLog()
		}
	}
}

func (j *Janitor) sweepAndLog() {
	n, err := j.Sweep()
	if err != nil {
		log.WithError(err).Warn("temp sweep failed")
		return
	}
	if n > 0 {
		log.WithField("removed", n).Info("stale workspaces removed")
	}
}
