package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/creditx/internal/models"
	"github.com/desertthunder/creditx/internal/shared"
	"github.com/google/go-cmp/cmp"
)

const (
	mbidA = "5b11f4ce-a62d-471e-81fc-a69a8278c7da"
	mbidB = "0d0f6f0a-7c6b-4d3a-9d6e-3b7a7b8c9d01"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "entities")
		if err != nil {
			t.Fatalf("NextSequence() error = %v", err)
		}
		if got != want {
			t.Errorf("NextSequence() = %d, want %d", got, want)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for table without a sequence")
	}
}

func TestSettingsRepository(t *testing.T) {
	t.Run("Get Unset", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, ok, err := NewSettingsRepository(db).Get("voice.open_token")
		if err != nil {
			t.Fatalf("failed to get setting: %v", err)
		}
		if ok {
			t.Error("expected unset key to report ok = false")
		}
	})

	t.Run("Set and Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSettingsRepository(db)
		if err := repo.Set("voice.open_token", "（CV："); err != nil {
			t.Fatalf("failed to set setting: %v", err)
		}

		got, ok, err := repo.Get("voice.open_token")
		if err != nil || !ok {
			t.Fatalf("failed to get setting: ok=%v err=%v", ok, err)
		}
		if got != "（CV：" {
			t.Errorf("expected （CV：, got %q", got)
		}
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSettingsRepository(db)
		_ = repo.Set("voice.separator", ",")
		if err := repo.Set("voice.separator", "、"); err != nil {
			t.Fatalf("failed to overwrite setting: %v", err)
		}

		all, err := repo.All()
		if err != nil {
			t.Fatalf("failed to list settings: %v", err)
		}
		if diff := cmp.Diff(map[string]string{"voice.separator": "、"}, all); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSettingsRepository(db)
		_ = repo.Set("voice.close_token", ")")
		if err := repo.Delete("voice.close_token"); err != nil {
			t.Fatalf("failed to delete setting: %v", err)
		}
		if err := repo.Delete("voice.close_token"); err != nil {
			t.Errorf("deleting an unset key should not fail: %v", err)
		}
		if _, ok, _ := repo.Get("voice.close_token"); ok {
			t.Error("expected key to be gone")
		}
	})

	t.Run("Closed Database", func(t *testing.T) {
		db := setupTestDB(t)
		db.Close()

		repo := NewSettingsRepository(db)
		if _, _, err := repo.Get("k"); err == nil {
			t.Error("expected error from closed database")
		}
		if err := repo.Set("k", "v"); err == nil {
			t.Error("expected error from closed database")
		}
		if _, err := repo.All(); err == nil {
			t.Error("expected error from closed database")
		}
	})
}

func TestEntityRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewEntityRepository(db)
		entity := models.NewEntity(models.EntityLink{Name: "Performer", ID: mbidA})

		if err := repo.Create(entity); err != nil {
			t.Fatalf("failed to create entity: %v", err)
		}
		if entity.ID == "" {
			t.Error("entity ID should be set after creation")
		}
		if entity.Sequence != 1 {
			t.Errorf("expected sequence 1, got %d", entity.Sequence)
		}

		got, err := repo.Get(entity.ID)
		if err != nil {
			t.Fatalf("failed to get entity: %v", err)
		}
		if got.Name != "Performer" || got.MBID != mbidA {
			t.Errorf("unexpected entity %+v", got)
		}
	})

	t.Run("Create Validation", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewEntityRepository(db)
		tests := []struct {
			name string
			link models.EntityLink
		}{
			{name: "Empty Name", link: models.EntityLink{Name: " ", ID: mbidA}},
			{name: "Empty MBID", link: models.EntityLink{Name: "A"}},
			{name: "Malformed MBID", link: models.EntityLink{Name: "A", ID: "abc-123"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := repo.Create(models.NewEntity(tt.link))
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})

	t.Run("Create Duplicate", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewEntityRepository(db)
		link := models.EntityLink{Name: "Performer", ID: mbidA}
		if err := repo.Create(models.NewEntity(link)); err != nil {
			t.Fatalf("failed to create entity: %v", err)
		}
		if err := repo.Create(models.NewEntity(link)); err == nil {
			t.Error("expected error for duplicate name/mbid pair")
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := NewEntityRepository(db).Get("nonexistent-id"); !errors.Is(err, shared.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewEntityRepository(db)
		entity := models.NewEntity(models.EntityLink{Name: "Performer", ID: mbidA})
		_ = repo.Create(entity)

		if err := repo.Delete(entity.ID); err != nil {
			t.Fatalf("failed to delete entity: %v", err)
		}
		if err := repo.Delete(entity.ID); !errors.Is(err, shared.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound on second delete, got %v", err)
		}
	})

	t.Run("SaveLinks", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewEntityRepository(db)
		links := []models.EntityLink{
			{Name: "Performer", ID: mbidA},
			{Name: "Character", ID: mbidB},
			{Name: "Unlinked", ID: "not-an-id"},
		}

		created, err := repo.SaveLinks(links)
		if err != nil {
			t.Fatalf("failed to save links: %v", err)
		}
		if created != 2 {
			t.Errorf("expected 2 created, got %d", created)
		}

		links[1] = models.EntityLink{Name: "Character", ID: mbidB, Variant: true, Canonical: "Character (Canonical)"}
		created, err = repo.SaveLinks(links)
		if err != nil {
			t.Fatalf("failed to save links again: %v", err)
		}
		if created != 0 {
			t.Errorf("expected 0 created on rescan, got %d", created)
		}

		got, err := repo.Links()
		if err != nil {
			t.Fatalf("failed to list links: %v", err)
		}
		want := []models.EntityLink{links[0], links[1]}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("links mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Locate", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewEntityRepository(db)
		_, _ = repo.SaveLinks([]models.EntityLink{
			{Name: "Performer", ID: mbidA},
			{Name: "Credited Name", ID: mbidB, Variant: true, Canonical: "Character"},
		})

		tests := []struct {
			name string
			want string
			err  error
		}{
			{name: "Performer", want: mbidA},
			{name: "performer", want: mbidA},
			{name: "Character", want: mbidB},
			{name: "Credited Name", err: shared.ErrEntityNotFound},
			{name: "", err: shared.ErrEntityNotFound},
		}

		for _, tt := range tests {
			got, err := repo.Locate(context.Background(), tt.name)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("Locate(%q) error = %v, want %v", tt.name, err, tt.err)
				}
				continue
			}
			if err != nil || got != tt.want {
				t.Errorf("Locate(%q) = %q, %v; want %q", tt.name, got, err, tt.want)
			}
		}
	})
}
