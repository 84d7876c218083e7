package films_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/internal/directors"
	"github.com/JaimeStill/film-catalog/internal/films"
	"github.com/JaimeStill/film-catalog/internal/posters"
	"github.com/JaimeStill/film-catalog/pkg/logging"
	"github.com/JaimeStill/film-catalog/pkg/storage"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type directorIndex map[uuid.UUID]directors.Director

func (d directorIndex) Find(ctx context.Context, id uuid.UUID) (*directors.Director, error) {
	dir, ok := d[id]
	if !ok {
		return nil, directors.ErrNotFound
	}
	return &dir, nil
}

type actorIndex map[uuid.UUID]actors.Actor

func (a actorIndex) Find(ctx context.Context, id uuid.UUID) (*actors.Actor, error) {
	actor, ok := a[id]
	if !ok {
		return nil, actors.ErrNotFound
	}
	return &actor, nil
}

// memoryStore keeps records the way the film tables do, including the
// restrict rule on referenced actors.
type memoryStore struct {
	directors directorIndex
	actors    actorIndex
	records   map[uuid.UUID]films.Record

	insertErr error
	saveErr   error
	writes    int
}

func newMemoryStore(d directorIndex, a actorIndex) *memoryStore {
	return &memoryStore{directors: d, actors: a, records: make(map[uuid.UUID]films.Record)}
}

func (m *memoryStore) List(ctx context.Context) ([]films.Film, error) {
	out := make([]films.Film, 0, len(m.records))
	for id := range m.records {
		f, _ := m.Find(ctx, id)
		out = append(out, *f)
	}
	return out, nil
}

func (m *memoryStore) Find(ctx context.Context, id uuid.UUID) (*films.Film, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, films.ErrNotFound
	}
	f := &films.Film{
		ID:          id,
		Title:       rec.Title,
		Description: rec.Description,
		Poster:      rec.Poster,
		ReleaseDate: rec.ReleaseDate,
		Director:    m.directors[rec.DirectorID],
		Actors:      []actors.Actor{},
	}
	for _, actorID := range rec.Actors {
		f.Actors = append(f.Actors, m.actors[actorID])
	}
	return f, nil
}

func (m *memoryStore) Insert(ctx context.Context, rec films.Record) (uuid.UUID, error) {
	if m.insertErr != nil {
		return uuid.Nil, m.insertErr
	}
	m.writes++
	id := uuid.New()
	m.records[id] = rec
	return id, nil
}

func (m *memoryStore) Save(ctx context.Context, id uuid.UUID, rec films.Record) error {
	if _, ok := m.records[id]; !ok {
		return films.ErrNotFound
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	m.writes++
	m.records[id] = rec
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return films.ErrNotFound
	}
	m.writes++
	delete(m.records, id)
	return nil
}

// deleteActor mirrors ON DELETE RESTRICT on film_actors.actor_id.
func (m *memoryStore) deleteActor(id uuid.UUID) error {
	for _, rec := range m.records {
		if rec.Actors.Contains(id) {
			return actors.ErrReferenced
		}
	}
	if _, ok := m.actors[id]; !ok {
		return actors.ErrNotFound
	}
	delete(m.actors, id)
	return nil
}

type fakePosters struct {
	files     map[string][]byte
	stores    int
	deletes   int
	storeErr  error
	deleteErr error
}

func newFakePosters() *fakePosters {
	return &fakePosters{files: make(map[string][]byte)}
}

func (p *fakePosters) Store(ctx context.Context, data []byte, name string) (string, error) {
	p.stores++
	if p.storeErr != nil {
		return "", p.storeErr
	}
	stored := fmt.Sprintf("%s_%s", uuid.NewString(), name)
	p.files[stored] = data
	return stored, nil
}

func (p *fakePosters) Delete(ctx context.Context, name string) error {
	p.deletes++
	if p.deleteErr != nil {
		return p.deleteErr
	}
	delete(p.files, name)
	return nil
}

func (p *fakePosters) Retrieve(ctx context.Context, name string) ([]byte, error) {
	data, ok := p.files[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

type fixture struct {
	sys      films.System
	store    *memoryStore
	posters  *fakePosters
	director directors.Director
	actors   []actors.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	director := directors.Director{ID: uuid.New(), FirstName: "Robert", LastName: "Zemeckis", Nationality: "US"}
	cast := []actors.Actor{
		{ID: uuid.New(), FirstName: "Tom", LastName: "Hanks", Nationality: "US"},
		{ID: uuid.New(), FirstName: "Robin", LastName: "Wright", Nationality: "US"},
		{ID: uuid.New(), FirstName: "Gary", LastName: "Sinise", Nationality: "US"},
	}

	dirs := directorIndex{director.ID: director}
	acts := actorIndex{}
	for _, a := range cast {
		acts[a.ID] = a
	}

	store := newMemoryStore(dirs, acts)
	p := newFakePosters()

	return &fixture{
		sys:      films.New(store, dirs, acts, p, logging.Discard()),
		store:    store,
		posters:  p,
		director: director,
		actors:   cast,
	}
}

func (f *fixture) command(actorIDs ...uuid.UUID) films.CreateCommand {
	return films.CreateCommand{
		Title:       "Forrest Gump",
		Description: "Life is like a box of chocolates.",
		ReleaseDate: films.NewDate(1994, time.July, 6),
		ActorIDs:    actorIDs,
		DirectorID:  f.director.ID,
		Poster:      &films.Upload{Filename: "gump.png", Data: pngBytes},
	}
}

func actorIDs(film *films.Film) []uuid.UUID {
	ids := make([]uuid.UUID, len(film.Actors))
	for i, a := range film.Actors {
		ids[i] = a.ID
	}
	return ids
}

func TestCreate_ResolvesReferences(t *testing.T) {
	f := newFixture(t)
	a, b := f.actors[0].ID, f.actors[1].ID

	film, err := f.sys.Create(context.Background(), f.command(a, b, a, b))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if film.Director.ID != f.director.ID {
		t.Errorf("director = %s, want %s", film.Director.ID, f.director.ID)
	}
	if got := actorIDs(film); !slices.Equal(got, []uuid.UUID{a, b}) {
		t.Errorf("actors = %v, want [%s %s]", got, a, b)
	}
	if film.Poster == "" {
		t.Error("poster reference is empty")
	}
	if _, ok := f.posters.files[film.Poster]; !ok {
		t.Errorf("poster %q not in asset store", film.Poster)
	}
}

func TestCreate_UnknownDirector(t *testing.T) {
	f := newFixture(t)
	cmd := f.command(f.actors[0].ID)
	cmd.DirectorID = uuid.New()

	_, err := f.sys.Create(context.Background(), cmd)
	if !errors.Is(err, directors.ErrNotFound) {
		t.Fatalf("Create() error = %v, want directors.ErrNotFound", err)
	}

	if f.posters.stores != 0 {
		t.Errorf("poster store invoked %d times, want 0", f.posters.stores)
	}
	if f.store.writes != 0 {
		t.Errorf("store writes = %d, want 0", f.store.writes)
	}
}

func TestCreate_UnknownActor(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()

	_, err := f.sys.Create(context.Background(), f.command(f.actors[0].ID, missing, f.actors[1].ID))
	if !errors.Is(err, actors.ErrNotFound) {
		t.Fatalf("Create() error = %v, want actors.ErrNotFound", err)
	}
	if want := missing.String(); !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name %s", err, want)
	}

	if f.posters.stores != 0 || f.store.writes != 0 {
		t.Errorf("writes performed: posters=%d store=%d", f.posters.stores, f.store.writes)
	}
	if len(f.store.records) != 0 {
		t.Errorf("records = %d, want 0", len(f.store.records))
	}
}

func TestCreate_RequiresPosterAndActors(t *testing.T) {
	f := newFixture(t)

	noPoster := f.command(f.actors[0].ID)
	noPoster.Poster = nil
	if _, err := f.sys.Create(context.Background(), noPoster); !errors.Is(err, films.ErrPosterRequired) {
		t.Errorf("Create() without poster error = %v, want ErrPosterRequired", err)
	}

	if _, err := f.sys.Create(context.Background(), f.command()); !errors.Is(err, films.ErrActorsRequired) {
		t.Errorf("Create() without actors error = %v, want ErrActorsRequired", err)
	}
}

func TestCreate_AssetStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.posters.storeErr = errors.New("disk full")

	_, err := f.sys.Create(context.Background(), f.command(f.actors[0].ID))
	if !errors.Is(err, films.ErrAssetStore) {
		t.Fatalf("Create() error = %v, want ErrAssetStore", err)
	}
	if f.store.writes != 0 {
		t.Errorf("store writes = %d, want 0", f.store.writes)
	}
}

func TestCreate_InvalidPosterIsNotAssetFailure(t *testing.T) {
	f := newFixture(t)
	f.posters.storeErr = posters.ErrInvalidPoster

	_, err := f.sys.Create(context.Background(), f.command(f.actors[0].ID))
	if !errors.Is(err, posters.ErrInvalidPoster) || errors.Is(err, films.ErrAssetStore) {
		t.Errorf("Create() error = %v, want ErrInvalidPoster only", err)
	}
}

func TestCreate_InsertFailureRemovesPoster(t *testing.T) {
	f := newFixture(t)
	f.store.insertErr = errors.New("connection reset")

	if _, err := f.sys.Create(context.Background(), f.command(f.actors[0].ID)); err == nil {
		t.Fatal("Create() should fail")
	}

	if f.posters.stores != 1 {
		t.Fatalf("poster stores = %d, want 1", f.posters.stores)
	}
	if len(f.posters.files) != 0 {
		t.Errorf("orphaned posters left: %d", len(f.posters.files))
	}
}

func TestUpdate_ReplacesActorSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b, c := f.actors[0].ID, f.actors[1].ID, f.actors[2].ID

	film, err := f.sys.Create(ctx, f.command(a, b))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	cmd := films.UpdateCommand(f.command(b, c))
	cmd.Poster = nil

	updated, err := f.sys.Update(ctx, film.ID, cmd)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if got := actorIDs(updated); !slices.Equal(got, []uuid.UUID{b, c}) {
		t.Errorf("actors = %v, want [%s %s]", got, b, c)
	}
	if updated.Poster != film.Poster {
		t.Errorf("poster = %q, want unchanged %q", updated.Poster, film.Poster)
	}
}

func TestUpdate_ReplacesPoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	cmd := films.UpdateCommand(f.command(f.actors[0].ID))
	cmd.Poster = &films.Upload{Filename: "new.png", Data: pngBytes}

	updated, err := f.sys.Update(ctx, film.ID, cmd)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if updated.Poster == film.Poster {
		t.Error("poster reference was not replaced")
	}
	if _, ok := f.posters.files[film.Poster]; ok {
		t.Error("previous poster still stored")
	}
	if _, ok := f.posters.files[updated.Poster]; !ok {
		t.Error("new poster not stored")
	}
}

func TestUpdate_PreviousPosterDeleteIsBestEffort(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	f.posters.deleteErr = errors.New("permission denied")
	cmd := films.UpdateCommand(f.command(f.actors[0].ID))

	updated, err := f.sys.Update(ctx, film.ID, cmd)
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Poster == film.Poster {
		t.Error("poster reference was not replaced")
	}
}

func TestUpdate_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	writes := f.store.writes

	if _, err := f.sys.Update(ctx, uuid.New(), films.UpdateCommand(f.command(f.actors[0].ID))); !errors.Is(err, films.ErrNotFound) {
		t.Errorf("Update() missing film error = %v, want ErrNotFound", err)
	}

	bad := films.UpdateCommand(f.command(f.actors[0].ID, uuid.New()))
	if _, err := f.sys.Update(ctx, film.ID, bad); !errors.Is(err, actors.ErrNotFound) {
		t.Errorf("Update() unknown actor error = %v, want actors.ErrNotFound", err)
	}

	stores, deletes := f.posters.stores, f.posters.deletes
	noDirector := films.UpdateCommand(f.command(f.actors[0].ID))
	noDirector.DirectorID = uuid.New()
	if _, err := f.sys.Update(ctx, film.ID, noDirector); !errors.Is(err, directors.ErrNotFound) {
		t.Errorf("Update() unknown director error = %v, want directors.ErrNotFound", err)
	}
	if f.posters.stores != stores || f.posters.deletes != deletes {
		t.Errorf("poster stores, deletes = %d, %d, want %d, %d", f.posters.stores, f.posters.deletes, stores, deletes)
	}

	if f.store.writes != writes {
		t.Errorf("store writes = %d, want %d", f.store.writes, writes)
	}
	if got, _ := f.sys.Find(ctx, film.ID); got.Poster != film.Poster {
		t.Errorf("poster changed to %q", got.Poster)
	}
}

func TestUpdate_InvalidPosterKeepsCurrent(t *testing.T) {
	ctx := context.Background()

	blobs, err := storage.New(&storage.Config{BasePath: t.TempDir()}, logging.Discard())
	if err != nil {
		t.Fatalf("storage.New() failed: %v", err)
	}

	hanks := actors.Actor{ID: uuid.New(), FirstName: "Tom", LastName: "Hanks", Nationality: "US"}
	director := directors.Director{ID: uuid.New(), FirstName: "Robert", LastName: "Zemeckis", Nationality: "US"}

	dirs := directorIndex{director.ID: director}
	acts := actorIndex{hanks.ID: hanks}
	sys := films.New(newMemoryStore(dirs, acts), dirs, acts, posters.New(blobs, logging.Discard()), logging.Discard())

	film, err := sys.Create(ctx, films.CreateCommand{
		Title:       "Cast Away",
		Description: "...",
		ReleaseDate: films.NewDate(2000, time.December, 22),
		DirectorID:  director.ID,
		ActorIDs:    []uuid.UUID{hanks.ID},
		Poster:      &films.Upload{Filename: "cast-away.png", Data: pngBytes},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	_, err = sys.Update(ctx, film.ID, films.UpdateCommand{
		Title:       film.Title,
		Description: film.Description,
		ReleaseDate: film.ReleaseDate,
		DirectorID:  director.ID,
		ActorIDs:    []uuid.UUID{hanks.ID},
		Poster:      &films.Upload{Filename: "notes.txt", Data: []byte("not an image at all")},
	})
	if !errors.Is(err, posters.ErrInvalidPoster) {
		t.Fatalf("Update() error = %v, want ErrInvalidPoster", err)
	}

	got, err := sys.Find(ctx, film.ID)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if got.Poster != film.Poster {
		t.Errorf("poster = %q, want %q", got.Poster, film.Poster)
	}

	data, err := sys.Poster(ctx, film.ID)
	if err != nil {
		t.Fatalf("Poster() failed: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Errorf("poster bytes = %q, want %q", data, pngBytes)
	}
}

func TestUpdate_SaveFailureRemovesNewPoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	f.store.saveErr = errors.New("connection reset")
	cmd := films.UpdateCommand(f.command(f.actors[0].ID))
	cmd.Poster = &films.Upload{Filename: "forrest.png", Data: pngBytes}
	if _, err := f.sys.Update(ctx, film.ID, cmd); err == nil {
		t.Fatal("Update() succeeded, want save error")
	}

	if len(f.posters.files) != 1 {
		t.Errorf("stored posters = %d, want 1", len(f.posters.files))
	}
	if _, ok := f.posters.files[film.Poster]; !ok {
		t.Error("current poster removed")
	}
	if got, _ := f.sys.Find(ctx, film.ID); got.Poster != film.Poster {
		t.Errorf("poster changed to %q", got.Poster)
	}
}

func TestDelete_RemovesPosterAndFilm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := f.sys.Delete(ctx, film.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, ok := f.posters.files[film.Poster]; ok {
		t.Error("poster still stored")
	}
	if _, err := f.sys.Find(ctx, film.ID); !errors.Is(err, films.ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestDelete_PosterFailureKeepsFilm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	f.posters.deleteErr = errors.New("io error")
	if err := f.sys.Delete(ctx, film.ID); !errors.Is(err, films.ErrAssetStore) {
		t.Fatalf("Delete() error = %v, want ErrAssetStore", err)
	}

	if _, err := f.sys.Find(ctx, film.ID); err != nil {
		t.Errorf("film should remain, Find() error = %v", err)
	}
}

func TestDelete_Missing(t *testing.T) {
	f := newFixture(t)

	if err := f.sys.Delete(context.Background(), uuid.New()); !errors.Is(err, films.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	film, err := f.sys.Create(ctx, f.command(f.actors[0].ID))
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	data, err := f.sys.Poster(ctx, film.ID)
	if err != nil {
		t.Fatalf("Poster() failed: %v", err)
	}
	if string(data) != string(pngBytes) {
		t.Errorf("Poster() = %q, want png bytes", data)
	}

	delete(f.posters.files, film.Poster)
	if _, err := f.sys.Poster(ctx, film.ID); !errors.Is(err, films.ErrPosterMissing) {
		t.Errorf("Poster() error = %v, want ErrPosterMissing", err)
	}
}

// Tom Hanks in Forrest Gump, through the real poster store on disk.
func TestScenario_ForrestGump(t *testing.T) {
	ctx := context.Background()

	blobs, err := storage.New(&storage.Config{BasePath: t.TempDir()}, logging.Discard())
	if err != nil {
		t.Fatalf("storage.New() failed: %v", err)
	}

	hanks := actors.Actor{ID: uuid.New(), FirstName: "Tom", LastName: "Hanks", Nationality: "US"}
	director := directors.Director{ID: uuid.New(), FirstName: "A", LastName: "B", Nationality: "FR"}

	dirs := directorIndex{director.ID: director}
	acts := actorIndex{hanks.ID: hanks}
	store := newMemoryStore(dirs, acts)
	sys := films.New(store, dirs, acts, posters.New(blobs, logging.Discard()), logging.Discard())

	created, err := sys.Create(ctx, films.CreateCommand{
		Title:       "Forrest Gump",
		Description: "...",
		ReleaseDate: films.NewDate(1994, time.July, 6),
		ActorIDs:    []uuid.UUID{hanks.ID},
		DirectorID:  director.ID,
		Poster:      &films.Upload{Filename: "forrest gump.png", Data: pngBytes},
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := sys.Find(ctx, created.ID)
	if err != nil {
		t.Fatalf("Find() failed: %v", err)
	}
	if got.Title != "Forrest Gump" {
		t.Errorf("title = %q, want Forrest Gump", got.Title)
	}
	if len(got.Actors) != 1 {
		t.Errorf("actors = %d, want 1", len(got.Actors))
	}

	if ok, _ := blobs.Exists(ctx, got.Poster); !ok {
		t.Errorf("poster %q not on disk", got.Poster)
	}

	if err := store.deleteActor(hanks.ID); !errors.Is(err, actors.ErrReferenced) {
		t.Errorf("deleting a cast actor error = %v, want ErrReferenced", err)
	}
	if _, ok := acts[hanks.ID]; !ok {
		t.Error("actor removed despite reference")
	}
}
