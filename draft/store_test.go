package draft

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/votive"
	"github.com/aerissecure/votive/lunar"
	"github.com/aerissecure/votive/member"
	"github.com/aerissecure/votive/templates"
)

func testForm(name string) votive.Form {
	return votive.Form{
		Members: member.Roster{{
			ID: "m1", Title: member.DefaultTitle, Name: name,
			BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Sex: lunar.Male,
		}},
		Address:   "Hà Nội",
		Date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Templates: []string{"cau_an", "hinh_nhan"},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	return NewStore(filepath.Join(t.TempDir(), "nested", "drafts.json"), WithNow(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
}

func TestSaveListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first, err := s.Save(ctx, "  lần một ", testForm("A"))
	require.NoError(t, err)
	assert.Equal(t, "lần một", first.Name)
	assert.NotEmpty(t, first.ID)

	second, err := s.Save(ctx, "lần hai", testForm("B"))
	require.NoError(t, err)

	drafts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, second.ID, drafts[0].ID)
	assert.Equal(t, first.ID, drafts[1].ID)
	assert.True(t, drafts[0].CreatedAt.After(drafts[1].CreatedAt))

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Form.Members[0].Name)
	assert.Equal(t, lunar.Male, got.Form.Members[0].Sex)
	assert.True(t, got.Form.Date.Equal(testForm("A").Date))
}

func TestSaveRequiresName(t *testing.T) {
	_, err := newTestStore(t).Save(context.Background(), " ", testForm("A"))
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, err := s.Save(ctx, "a", testForm("A"))
	require.NoError(t, err)
	b, err := s.Save(ctx, "b", testForm("B"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	drafts, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, b.ID, drafts[0].ID)

	assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)
	_, err = s.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	raw := `[{"id":"old","name":"cũ","data":{"members":[{"name":"A","sex":"male"}],"address":"x"},"created_at":"2023-01-01T00:00:00Z"}]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(raw), 0o600))

	d, err := s.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, []string{votive.DefaultTemplate}, d.Form.Templates)
	assert.NotEmpty(t, d.Form.Members[0].ID)
}

func TestLoadLegacyTemplateID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))

	raw := `[
  {"id":"legacy","name":"cũ","data":{"members":[{"name":"A"}],"template_id":"than_tai"},"created_at":"2023-01-01T00:00:00Z"},
  {"id":"both","name":"mới","data":{"template_id":"than_tai","templates":["le_phat","cau_an"]},"created_at":"2023-01-02T00:00:00Z"}
]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(raw), 0o600))

	d, err := s.Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{"than_tai"}, d.Form.Templates)
	assert.Equal(t, "A", d.Form.Members[0].Name)
	assert.Equal(t, "cũ", d.Name)

	d, err = s.Get(ctx, "both")
	require.NoError(t, err)
	assert.Equal(t, []string{"le_phat", "cau_an"}, d.Form.Templates)

	// Rewriting the file stores the migrated selection.
	_, err = s.Save(ctx, "x", votive.NewForm())
	require.NoError(t, err)
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "template_id")
	d, err = s.Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{"than_tai"}, d.Form.Templates)
}

func TestCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, err := s.List(context.Background())
	assert.Error(t, err)
}

func TestConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	s := NewStore(filepath.Join(t.TempDir(), "drafts.json"), WithNow(func() time.Time { return fixed }))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Save(ctx, "song song", testForm("A"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	drafts, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, drafts, 8)
}

func TestDefaultName(t *testing.T) {
	reg, err := templates.New()
	require.NoError(t, err)
	when := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	f := testForm("NGUYỄN VĂN A")
	assert.Equal(t, "NGUYỄN VĂN A - 2 loại sớ (5/3/2024)", DefaultName(f, reg, when))

	f.Templates = []string{"le_phat"}
	assert.Equal(t, "NGUYỄN VĂN A - 5. Sớ Lễ Phật (5/3/2024)", DefaultName(f, reg, when))

	f.Members[0].Name = " "
	f.Templates = nil
	assert.Equal(t, UnnamedMember+" - Sớ (5/3/2024)", DefaultName(f, reg, when))
}
