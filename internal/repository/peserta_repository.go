package repository

import (
	"context"
	"database/sql"

	"github.com/idsynccam/registration-api/internal/model"
	"github.com/idsynccam/registration-api/internal/utils"
)

// PesertaRepo reads and writes the `peserta` table.  Read operations return
// the derived view (month name, zero-padded day) so callers never recompute
// it.
type PesertaRepo struct{ DB *sql.DB }

func NewPesertaRepo(db *sql.DB) *PesertaRepo { return &PesertaRepo{DB: db} }

// Create inserts a participant record as-is.  Usia is computed by the media
// intake pipeline before this call, not here.
func (r *PesertaRepo) Create(ctx context.Context, p model.Peserta) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO peserta (full_name, asal_sekolah, tgl_lahir, usia) VALUES (?,?,?,?)",
		p.FullName, p.AsalSekolah, p.TglLahir, p.Usia)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListSorted returns every participant ordered by birth date ascending, each
// augmented with the derived month name and day.
func (r *PesertaRepo) ListSorted(ctx context.Context) ([]model.PesertaView, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,full_name,asal_sekolah,tgl_lahir,usia,created_at FROM peserta ORDER BY tgl_lahir ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PesertaView
	for rows.Next() {
		var p model.Peserta
		if err := rows.Scan(&p.ID, &p.FullName, &p.AsalSekolah, &p.TglLahir, &p.Usia, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p.View())
	}
	return out, rows.Err()
}

// GetByID fetches a single participant with derived fields.
func (r *PesertaRepo) GetByID(ctx context.Context, id uint64) (model.PesertaView, error) {
	var p model.Peserta
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,asal_sekolah,tgl_lahir,usia,created_at FROM peserta WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.FullName, &p.AsalSekolah, &p.TglLahir, &p.Usia, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.PesertaView{}, ErrPesertaNotFound
	}
	if err != nil {
		return model.PesertaView{}, err
	}
	return p.View(), nil
}

// DeleteByID removes one participant and reports ErrPesertaNotFound when
// the id does not exist.
func (r *PesertaRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM peserta WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPesertaNotFound
	}
	return nil
}

// DeleteByMonth removes every participant whose birth month matches the
// given 1..12 month number, across all years.  The range check runs before
// any query.  It returns the localized month name and the number of rows
// removed.
func (r *PesertaRepo) DeleteByMonth(ctx context.Context, month int) (string, int64, error) {
	if month < 1 || month > 12 {
		return "", 0, ErrInvalidMonth
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM peserta WHERE MONTH(tgl_lahir)=?", month)
	if err != nil {
		return "", 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", 0, err
	}
	return utils.MonthName(month), n, nil
}

// DeleteAll removes every participant row and returns the count removed.
func (r *PesertaRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM peserta")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
