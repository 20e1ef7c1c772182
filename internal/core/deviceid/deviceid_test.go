package deviceid

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mvpauth/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func fakeFS(t *testing.T, files map[string]string) {
	t.Helper()
	testkit.Swap(t, &readFile, func(p string) ([]byte, error) {
		if v, ok := files[p]; ok {
			return []byte(v), nil
		}
		return nil, os.ErrNotExist
	})
}

func TestResolver_Override(t *testing.T) {
	testkit.Serial(t)
	fakeFS(t, map[string]string{"/etc/machine-id": "abc\n"})
	r := New("  forced ", "")
	if r.ID() != "forced" || r.Source() != SourceOverride {
		t.Fatalf("id = %q source = %q", r.ID(), r.Source())
	}
}

func TestResolver_Order(t *testing.T) {
	testkit.Serial(t)
	cases := []struct {
		name  string
		files map[string]string
		id    string
		src   Source
	}{
		{"machine id", map[string]string{"/etc/machine-id": "m1\n", "/sys/class/dmi/id/product_uuid": "p1"}, "m1", SourceMachineID},
		{"dbus machine id", map[string]string{"/var/lib/dbus/machine-id": "d1"}, "d1", SourceMachineID},
		{"product uuid", map[string]string{"/etc/machine-id": "  ", "/sys/class/dmi/id/product_uuid": "p1\n"}, "p1", SourceProductUUID},
		{"cpu serial", map[string]string{"/proc/cpuinfo": "processor\t: 0\nSerial\t\t: 00000000abcd1234\n"}, "00000000abcd1234", SourceCPUSerial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakeFS(t, tc.files)
			r := New("", "")
			if r.ID() != tc.id || r.Source() != tc.src {
				t.Fatalf("id = %q source = %q, want %q %q", r.ID(), r.Source(), tc.id, tc.src)
			}
		})
	}
}

func TestResolver_ZeroSerialIgnored(t *testing.T) {
	testkit.Serial(t)
	fakeFS(t, map[string]string{"/proc/cpuinfo": "Serial\t: 0000000000000000\n"})
	testkit.Swap(t, &newID, func() string { return "generated" })
	r := New("", "")
	if r.ID() != "generated" || r.Source() != SourceInstallation {
		t.Fatalf("id = %q source = %q", r.ID(), r.Source())
	}
}

func TestResolver_InstallationPersisted(t *testing.T) {
	testkit.Serial(t)
	dir := filepath.Join(t.TempDir(), "state")
	// host files are absent, state dir goes through the real filesystem
	testkit.Swap(t, &readFile, func(p string) ([]byte, error) {
		if filepath.Dir(p) == dir {
			return os.ReadFile(p)
		}
		return nil, os.ErrNotExist
	})
	n := 0
	testkit.Swap(t, &newID, func() string { n++; return "id-" + string(rune('0'+n)) })

	first := New("", dir).ID()
	second := New("", dir).ID()
	if first != "id-1" || second != "id-1" {
		t.Fatalf("first = %q second = %q", first, second)
	}
	b, err := os.ReadFile(filepath.Join(dir, "installation-id"))
	if err != nil || string(b) != "id-1\n" {
		t.Fatalf("persisted = %q err %v", b, err)
	}
}

func TestResolver_Caches(t *testing.T) {
	testkit.Serial(t)
	files := map[string]string{"/etc/machine-id": "m1"}
	fakeFS(t, files)
	r := New("", "")
	_ = r.ID()
	files["/etc/machine-id"] = "m2"
	if r.ID() != "m1" {
		t.Fatalf("resolver did not cache")
	}
}

func TestResolver_PersistFailuresLogged(t *testing.T) {
	testkit.Serial(t)
	cases := []struct {
		name  string
		mkdir error
		write error
	}{
		{"mkdir", errors.New("read-only fs"), nil},
		{"write", nil, errors.New("disk full")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fakeFS(t, nil)
			testkit.Swap(t, &mkdirAll, func(string, os.FileMode) error { return tc.mkdir })
			testkit.Swap(t, &writeFile, func(string, []byte, os.FileMode) error { return tc.write })
			testkit.Swap(t, &newID, func() string { return "generated" })

			var buf bytes.Buffer
			l := zerolog.New(&buf)
			r := New("", "/state")
			r.log = &l

			if r.ID() != "generated" || r.Source() != SourceInstallation {
				t.Fatalf("id = %q source = %q", r.ID(), r.Source())
			}
			testkit.MustContain(t, buf.String(), "could not persist installation id")
			testkit.MustContain(t, buf.String(), `"path":"/state/installation-id"`)
		})
	}
}
