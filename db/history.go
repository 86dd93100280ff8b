package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"yt-media-api/models"
)

// Store guarda el historial de descargas y transcripciones
type Store struct {
	DB *sql.DB
}

func NewStore(DB *sql.DB) *Store {
	return &Store{DB: DB}
}

// Start inserta la peticion en estado processing y devuelve su id
func (s *Store) Start(ctx context.Context, rec models.RequestRecord) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO requests (video_id, title, kind, resolution, status, requested_by_ip) VALUES (?, ?, ?, ?, ?, ?)",
		rec.VideoID, rec.Title, rec.Kind, rec.Resolution, models.Processing, rec.RequestedByIP)
	if err != nil {
		return 0, errors.Wrap(err, "error al insertar la peticion")
	}
	return res.LastInsertId()
}

// Finish marca la peticion como completed o failed
func (s *Store) Finish(ctx context.Context, id int64, status string, errMsg string) error {
	_, err := s.DB.ExecContext(ctx,
		"UPDATE requests SET status = ?, error = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, errMsg, id)
	if err != nil {
		return errors.Wrap(err, "error al actualizar el estado de la peticion")
	}
	return nil
}

// List devuelve las ultimas peticiones, la mas reciente primero
func (s *Store) List(ctx context.Context, limit int) ([]models.RequestRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, video_id, title, kind, resolution, status, error, requested_by_ip, created_at, updated_at FROM requests ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, errors.Wrap(err, "error al obtener las peticiones")
	}
	defer rows.Close()

	records := []models.RequestRecord{}
	for rows.Next() {
		var r models.RequestRecord
		err := rows.Scan(&r.ID, &r.VideoID, &r.Title, &r.Kind, &r.Resolution, &r.Status, &r.Error, &r.RequestedByIP, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "error al leer la peticion")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error al procesar los resultados")
	}
	return records, nil
}
