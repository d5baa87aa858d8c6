package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mobapp/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS installs (
  store_id INTEGER PRIMARY KEY,
  access_token TEXT NOT NULL,
  carrier_id INTEGER NOT NULL DEFAULT 0,
  installed_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := d.conn.Exec(schema)
	return err
}

// SaveInstall records a successful OAuth install, replacing the token on
// reinstall.
func (d *DB) SaveInstall(storeID int64, accessToken string) error {
	_, err := d.conn.Exec(`
INSERT INTO installs (store_id, access_token, installed_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(store_id) DO UPDATE SET
  access_token = excluded.access_token,
  installed_at = excluded.installed_at
`, storeID, accessToken)
	return err
}

// SetCarrier stores the carrier id registered for a store.
func (d *DB) SetCarrier(storeID, carrierID int64) error {
	_, err := d.conn.Exec(`UPDATE installs SET carrier_id = ? WHERE store_id = ?`, carrierID, storeID)
	return err
}

// GetInstall returns the install record for a store, with ok=false when the
// store never completed OAuth.
func (d *DB) GetInstall(storeID int64) (internal.InstallRow, bool, error) {
	row := d.conn.QueryRow(`
SELECT store_id, access_token, carrier_id, installed_at
FROM installs WHERE store_id = ?`, storeID)

	var out internal.InstallRow
	err := row.Scan(&out.StoreID, &out.AccessToken, &out.CarrierID, &out.InstalledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return internal.InstallRow{}, false, nil
	}
	if err != nil {
		return internal.InstallRow{}, false, err
	}
	return out, true, nil
}

// CountInstalls reports how many stores have installed the app.
func (d *DB) CountInstalls() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM installs`).Scan(&n)
	return n, err
}
