// Package sqlite registers the "sqlite3_rag" database/sql driver: go-sqlite3
// with foreign keys enforced and a cosine_similarity SQL function over
// little-endian float32 BLOBs.
package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/sandevgo/ragdesk/pkg/vecmath"
)

const DriverName = "sqlite3_rag"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if _, err := conn.Exec("PRAGMA foreign_keys = ON", nil); err != nil {
				return err
			}
			if _, err := conn.Exec("PRAGMA busy_timeout = 5000", nil); err != nil {
				return err
			}
			return conn.RegisterFunc("cosine_similarity", cosineBlob, true)
		},
	})
}

// cosineBlob is the SQL-facing form of vecmath.Cosine. Malformed or
// mismatched blobs score 0 rather than failing the whole query.
func cosineBlob(a, b []byte) float64 {
	va, err := DecodeVector(a)
	if err != nil {
		return 0
	}
	vb, err := DecodeVector(b)
	if err != nil || len(va) != len(vb) {
		return 0
	}
	return float64(vecmath.Cosine(va, vb))
}
