package model

import (
	"sort"
	"time"

	"github.com/idsynccam/registration-api/internal/utils"
)

// Peserta represents a registration record as stored in the `peserta` table.
// Usia (age) is computed once at intake time and stored as a string; the
// month name and day-of-month are derived at read time, never stored.
//
// Fields:
//  ID          – primary key identifier.
//  FullName    – participant full name.
//  AsalSekolah – origin-school name.
//  TglLahir    – date of birth (DATE column).
//  Usia        – age in whole years at registration, as a string.
//  CreatedAt   – timestamp of creation.
type Peserta struct {
	ID          uint64    // peserta.id
	FullName    string    // peserta.full_name
	AsalSekolah string    // peserta.asal_sekolah
	TglLahir    time.Time // peserta.tgl_lahir
	Usia        string    // peserta.usia
	CreatedAt   time.Time // peserta.created_at
}

// PesertaView is a Peserta augmented with the derived month name and
// zero-padded day used by roster exports and the Drive folder layout.
type PesertaView struct {
	ID          uint64    `json:"id"`
	FullName    string    `json:"fullName"`
	AsalSekolah string    `json:"asalSekolah"`
	TglLahir    time.Time `json:"tglLahir"`
	Usia        string    `json:"usia"`
	Bulan       string    `json:"bulan"`
	Tanggal     string    `json:"tanggal"`
}

// View derives the read-time fields from the birth date.
func (p Peserta) View() PesertaView {
	return PesertaView{
		ID:          p.ID,
		FullName:    p.FullName,
		AsalSekolah: p.AsalSekolah,
		TglLahir:    p.TglLahir,
		Usia:        p.Usia,
		Bulan:       utils.BulanFromDate(p.TglLahir),
		Tanggal:     utils.TanggalFromDate(p.TglLahir),
	}
}

// MonthGroup is one bucket of the month partition.  Groups are kept in a
// slice, not a map, so first-occurrence order of the sorted input survives
// JSON serialization.
type MonthGroup struct {
	Bulan   string        `json:"bulan"`
	Jumlah  int           `json:"jumlah"`
	Peserta []PesertaView `json:"peserta"`
}

// GroupByMonth partitions an already-sorted roster by derived month name.
// Every record lands in exactly one group and group order follows the first
// occurrence of each month in the input.
func GroupByMonth(list []PesertaView) []MonthGroup {
	var groups []MonthGroup
	index := make(map[string]int, 12)
	for _, p := range list {
		i, ok := index[p.Bulan]
		if !ok {
			i = len(groups)
			index[p.Bulan] = i
			groups = append(groups, MonthGroup{Bulan: p.Bulan})
		}
		groups[i].Peserta = append(groups[i].Peserta, p)
		groups[i].Jumlah++
	}
	return groups
}

// SchoolCount is one row of the school frequency table in the summary
// endpoint.
type SchoolCount struct {
	Sekolah string `json:"sekolah"`
	Jumlah  int    `json:"jumlah"`
}

// TopSchools tallies registrations per origin school and returns the `limit`
// most frequent, ordered by descending count.
func TopSchools(list []PesertaView, limit int) []SchoolCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range list {
		if _, ok := counts[p.AsalSekolah]; !ok {
			order = append(order, p.AsalSekolah)
		}
		counts[p.AsalSekolah]++
	}
	out := make([]SchoolCount, 0, len(order))
	for _, s := range order {
		out = append(out, SchoolCount{Sekolah: s, Jumlah: counts[s]})
	}
	// Stable sort keeps ties in first-seen order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Jumlah > out[j].Jumlah })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
