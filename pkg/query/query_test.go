package query_test

import (
	"testing"

	"github.com/JaimeStill/film-catalog/pkg/query"
)

func films() *query.ProjectionMap {
	return query.NewProjectionMap("public", "films", "f").
		Project("id", "ID").
		Project("title", "Title").
		Project("release_date", "ReleaseDate")
}

func directors() *query.ProjectionMap {
	return query.NewProjectionMap("public", "directors", "d").
		Project("id", "DirectorID").
		Project("last_name", "DirectorLastName")
}

func TestProjectionMap(t *testing.T) {
	pm := films()

	if got := pm.Table(); got != "public.films f" {
		t.Errorf("Table() = %q, want %q", got, "public.films f")
	}
	if got := pm.Columns(); got != "f.id, f.title, f.release_date" {
		t.Errorf("Columns() = %q", got)
	}
	if got := pm.Column("Title"); got != "f.title" {
		t.Errorf("Column(Title) = %q, want %q", got, "f.title")
	}
	if got := pm.Column("f.poster"); got != "f.poster" {
		t.Errorf("Column(unknown) = %q, want input", got)
	}
	if got := len(pm.ColumnList()); got != 3 {
		t.Errorf("len(ColumnList()) = %d, want 3", got)
	}
}

func TestBuilder_Build(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *query.Builder
		wantSQL  string
		wantArgs int
	}{
		{
			name: "default sort",
			build: func() *query.Builder {
				return query.NewBuilder(films(), query.SortField{Field: "Title"})
			},
			wantSQL: "SELECT f.id, f.title, f.release_date FROM public.films f ORDER BY f.title ASC",
		},
		{
			name: "equality",
			build: func() *query.Builder {
				return query.NewBuilder(films(), query.SortField{Field: "Title"}).
					WhereEquals("ID", "abc")
			},
			wantSQL:  "SELECT f.id, f.title, f.release_date FROM public.films f WHERE f.id = $1 ORDER BY f.title ASC",
			wantArgs: 1,
		},
		{
			name: "nil equality ignored",
			build: func() *query.Builder {
				return query.NewBuilder(films(), query.SortField{}).WhereEquals("ID", nil)
			},
			wantSQL: "SELECT f.id, f.title, f.release_date FROM public.films f",
		},
		{
			name: "join and in",
			build: func() *query.Builder {
				return query.NewBuilder(films(), query.SortField{Field: "ReleaseDate", Descending: true}).
					Join(directors(), "d.id = f.director_id").
					WhereIn("DirectorID", []any{"a", "b"}).
					WhereEquals("Title", "Heat")
			},
			wantSQL: "SELECT f.id, f.title, f.release_date, d.id, d.last_name FROM public.films f " +
				"JOIN public.directors d ON d.id = f.director_id " +
				"WHERE d.id IN ($1, $2) AND f.title = $3 ORDER BY f.release_date DESC",
			wantArgs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build().Build()
			if sql != tt.wantSQL {
				t.Errorf("Build() sql = %q\nwant %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("Build() args = %v, want %d", args, tt.wantArgs)
			}
		})
	}
}

func TestBuilder_OrderBy(t *testing.T) {
	sql, _ := query.NewBuilder(films(), query.SortField{Field: "Title"}).
		OrderBy(query.SortField{Field: "ReleaseDate"}, query.SortField{Field: "ID"}).
		Build()

	want := "SELECT f.id, f.title, f.release_date FROM public.films f ORDER BY f.release_date ASC, f.id ASC"
	if sql != want {
		t.Errorf("Build() sql = %q, want %q", sql, want)
	}
}
