package db

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// InitDB abre la base de datos. En desarrollo las tablas se borran y se crean de nuevo.
func InitDB(path string, production bool) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "create db dir %s", dir)
		}
	}
	DB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "error abriendo la base de datos")
	}
	// sqlite no admite escrituras concurrentes
	DB.SetMaxOpenConns(1)

	if !production {
		log.Info("Modo desarrollo activado, eliminando tablas y creando nuevas")
		if err := deleteTables(DB); err != nil {
			DB.Close()
			return nil, err
		}
	}
	if err := createTables(DB); err != nil {
		DB.Close()
		return nil, err
	}
	return DB, nil
}

func deleteTables(DB *sql.DB) error {
	query := `
	DROP TABLE IF EXISTS requests;
	`
	if _, err := DB.Exec(query); err != nil {
		return errors.Wrap(err, "error eliminando tablas")
	}
	return nil
}

func createTables(DB *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id TEXT NOT NULL,
		title TEXT NOT NULL,
		kind TEXT CHECK(kind IN ('video', 'audio', 'transcript')) NOT NULL,
		resolution TEXT NOT NULL DEFAULT '',
		status TEXT CHECK(status IN ('processing', 'completed', 'failed')) NOT NULL,
		error TEXT NOT NULL DEFAULT '',
		requested_by_ip TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS requests_video_id ON requests(video_id);
	`
	if _, err := DB.Exec(query); err != nil {
		return errors.Wrap(err, "error creando tablas")
	}
	return nil
}
