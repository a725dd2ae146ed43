package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testProfile() *Profile {
	p := New(map[string]float64{
		"final_drive":         3,
		"front_power_distrib": 45,
		"camber_front":        -0.02,
	})
	p.Category = "RACING"
	p.Manufacturer = "BMW"
	p.Model = "BMW M3"
	return p
}

func TestStoreRoundTrip(t *testing.T) {
	st := NewStore(t.TempDir())

	want := testProfile()
	if _, err := st.Save("m3-racing", want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := st.Load("m3-racing")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Car() != want.Car() {
		t.Errorf("Car() = %q, want %q", got.Car(), want.Car())
	}
	if len(got.Settings) != len(want.Settings) {
		t.Fatalf("loaded %d settings, want %d", len(got.Settings), len(want.Settings))
	}
	for i, s := range got.Settings {
		if s != want.Settings[i] {
			t.Errorf("setting %d = %+v, want %+v", i, s, want.Settings[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := NewStore(t.TempDir())

	for _, name := range []string{"first", "second"} {
		if _, err := st.Save(name, testProfile()); err != nil {
			t.Fatalf("Save(%q) error: %v", name, err)
		}
	}

	infos, err := st.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(infos))
	}
	names := map[string]bool{}
	for _, info := range infos {
		names[info.Name] = true
		if info.Size == 0 {
			t.Errorf("entry %q has zero size", info.Name)
		}
	}
	if !names["first"] || !names["second"] {
		t.Errorf("List() names = %v", names)
	}
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(t.TempDir())

	if _, err := st.Save("gone", testProfile()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := st.Delete("gone"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := st.Load("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after delete = %v, want ErrNotFound", err)
	}
	if err := st.Delete("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice = %v, want ErrNotFound", err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := NewStore(t.TempDir())
	if _, err := st.Load("no-such"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() = %v, want ErrNotFound", err)
	}
}

func TestStoreExport(t *testing.T) {
	st := NewStore(t.TempDir())
	if _, err := st.Save("exported", testProfile()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "out.toml")
	if err := st.Export("exported", dest); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	p, err := LoadFile(dest)
	if err != nil {
		t.Fatalf("LoadFile(exported) error: %v", err)
	}
	if p.Model != "BMW M3" {
		t.Errorf("exported model = %q", p.Model)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("settings = [{name = \"nitro\", value = 1, increment = 1}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() with unknown setting expected error")
	}
}
