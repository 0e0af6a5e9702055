package model

import (
	"testing"
	"time"
)

func view(name, school string, y, m, d int) PesertaView {
	p := Peserta{
		FullName:    name,
		AsalSekolah: school,
		TglLahir:    time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC),
		Usia:        "17",
	}
	return p.View()
}

// TestViewDerivedFields checks that the month name and zero-padded day are
// derived from the birth date.
func TestViewDerivedFields(t *testing.T) {
	v := view("Budi", "SMA 1", 2007, 2, 3)
	if v.Bulan != "Februari" {
		t.Errorf("Bulan = %q, want Februari", v.Bulan)
	}
	if v.Tanggal != "03" {
		t.Errorf("Tanggal = %q, want 03", v.Tanggal)
	}
}

// TestGroupByMonthPartition verifies the partition property: every record in
// exactly one group, group sizes summing to the input size, and group order
// following first occurrence in the input.
func TestGroupByMonthPartition(t *testing.T) {
	list := []PesertaView{
		view("A", "S1", 2007, 3, 1),
		view("B", "S1", 2007, 3, 9),
		view("C", "S2", 2008, 1, 5),
		view("D", "S3", 2006, 3, 20),
		view("E", "S2", 2008, 12, 31),
	}
	groups := GroupByMonth(list)

	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	wantOrder := []string{"Maret", "Januari", "Desember"}
	total := 0
	for i, g := range groups {
		if g.Bulan != wantOrder[i] {
			t.Errorf("group[%d] = %q, want %q", i, g.Bulan, wantOrder[i])
		}
		if g.Jumlah != len(g.Peserta) {
			t.Errorf("group %q Jumlah = %d, len = %d", g.Bulan, g.Jumlah, len(g.Peserta))
		}
		for _, p := range g.Peserta {
			if p.Bulan != g.Bulan {
				t.Errorf("record %q in group %q has Bulan %q", p.FullName, g.Bulan, p.Bulan)
			}
		}
		total += g.Jumlah
	}
	if total != len(list) {
		t.Errorf("group sizes sum to %d, want %d", total, len(list))
	}
}

func TestGroupByMonthEmpty(t *testing.T) {
	if groups := GroupByMonth(nil); len(groups) != 0 {
		t.Errorf("groups = %d, want 0 for empty input", len(groups))
	}
}

// TestTopSchools checks descending count, the limit cut and that ties keep
// first-seen order.
func TestTopSchools(t *testing.T) {
	list := []PesertaView{
		view("A", "SMA 2", 2007, 1, 1),
		view("B", "SMA 1", 2007, 2, 1),
		view("C", "SMA 1", 2007, 3, 1),
		view("D", "SMA 3", 2007, 4, 1),
		view("E", "SMA 1", 2007, 5, 1),
		view("F", "SMA 3", 2007, 6, 1),
	}
	top := TopSchools(list, 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Sekolah != "SMA 1" || top[0].Jumlah != 3 {
		t.Errorf("top[0] = %+v, want SMA 1 with 3", top[0])
	}
	if top[1].Sekolah != "SMA 3" || top[1].Jumlah != 2 {
		t.Errorf("top[1] = %+v, want SMA 3 with 2", top[1])
	}
}

func TestTopSchoolsTieOrder(t *testing.T) {
	list := []PesertaView{
		view("A", "SMA B", 2007, 1, 1),
		view("B", "SMA A", 2007, 2, 1),
	}
	top := TopSchools(list, 0)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Sekolah != "SMA B" {
		t.Errorf("top[0] = %q, want first-seen SMA B on a tie", top[0].Sekolah)
	}
}
