package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestFiles_Paired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %q", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("no migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("migration %s has no down file", v)
		}
	}
}

func TestCatalogSchema_Constraints(t *testing.T) {
	data, err := fs.ReadFile(files, "sql/000001_catalog.up.sql")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	schema := string(data)

	for _, want := range []string{
		"director_id  UUID NOT NULL REFERENCES directors(id) ON DELETE RESTRICT",
		"film_id  UUID NOT NULL REFERENCES films(id) ON DELETE CASCADE",
		"actor_id UUID NOT NULL REFERENCES actors(id) ON DELETE RESTRICT",
		"PRIMARY KEY (film_id, actor_id)",
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}
