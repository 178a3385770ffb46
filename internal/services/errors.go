package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared across services. User-facing validation messages
// are localized; handlers map these to HTTP status codes.
var (
	ErrNotFound        = errors.New("data tidak ditemukan")
	ErrInvalidTOTPCode = errors.New("kode verifikasi tidak valid")
	ErrNoTOTPSecret    = errors.New("2FA belum diaktifkan untuk akun ini")
	ErrSelfAction      = errors.New("tidak dapat melakukan aksi ini pada akun sendiri")
)

// ValidationError is a rejected-input error whose message is safe to show
// the client. Handlers render it as a 400; every other non-sentinel error
// is treated as internal and never leaves the server logs.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mapNotFound converts the pgx no-rows error into the service-level
// sentinel so handlers never import pgx.
func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
