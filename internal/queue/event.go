// Package queue defines message payloads exchanged over the message broker.
package queue

// PesertaRegisteredEvent is published after a media intake completes: the
// photo reached Drive and the participant row exists.  It carries enough
// information for downstream consumers to log or notify without querying
// the primary database.
type PesertaRegisteredEvent struct {
	PesertaID    uint64 `json:"peserta_id"`
	FullName     string `json:"full_name"`
	AsalSekolah  string `json:"asal_sekolah"`
	TglLahir     string `json:"tgl_lahir"`
	Usia         string `json:"usia"`
	Bulan        string `json:"bulan"`
	DriveFileID  string `json:"drive_file_id"`
	DriveLink    string `json:"drive_link"`
	RegisteredAt string `json:"registered_at"`
}
