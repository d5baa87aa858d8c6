package storage

import (
	"path/filepath"
	"testing"
)

func TestInstallLifecycle(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, ok, err := db.GetInstall(123); err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}

	if err := db.SaveInstall(123, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetCarrier(123, 555); err != nil {
		t.Fatal(err)
	}

	row, ok, err := db.GetInstall(123)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if row.AccessToken != "tok-1" || row.CarrierID != 555 {
		t.Fatalf("row: %+v", row)
	}

	// Reinstall replaces the token, keeps the row unique.
	if err := db.SaveInstall(123, "tok-2"); err != nil {
		t.Fatal(err)
	}
	row, _, err = db.GetInstall(123)
	if err != nil {
		t.Fatal(err)
	}
	if row.AccessToken != "tok-2" {
		t.Fatalf("token after reinstall: %q", row.AccessToken)
	}

	n, err := db.CountInstalls()
	if err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}
