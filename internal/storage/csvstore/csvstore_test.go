package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blufunnel/games-portal/internal/common"
	"github.com/blufunnel/games-portal/internal/config"
	"github.com/blufunnel/games-portal/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := &config.StorageConfig{
		DataDir:         t.TempDir(),
		CacheTTLSeconds: 0, // no caching in tests unless stated
	}
	m, err := NewManager(common.NewSilentLogger(), cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManager_CreatesTablesWithHeaders(t *testing.T) {
	m := newTestManager(t)

	for _, name := range []string{PlayersFile, CompaniesFile, PortfoliosFile} {
		path := filepath.Join(m.DataDir(), name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			t.Errorf("expected %s to contain a header row", name)
		}
		if strings.Count(content, "\n") != 0 {
			t.Errorf("expected %s to be header-only, got %q", name, content)
		}
	}

	header, err := os.ReadFile(filepath.Join(m.DataDir(), PlayersFile))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(header)) != "player_id,player_name,coach,batch,status" {
		t.Errorf("unexpected players header: %q", string(header))
	}
}

func TestNewManager_PreservesExistingTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PlayersFile)
	content := "player_id,player_name,coach,batch,status\n1,Alice,Bob,Jan,Core\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.StorageConfig{DataDir: dir}
	m, err := NewManager(common.NewSilentLogger(), cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	players, err := m.Players().List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Alice" || players[0].ID != 1 {
		t.Errorf("unexpected players: %+v", players)
	}
}

func TestPlayerStore_AddAssignsSequentialIDs(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	first, err := m.Players().Add(ctx, models.Player{Name: "Alice", Coach: "Bob"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("expected first player ID 1, got %d", first.ID)
	}

	second, err := m.Players().Add(ctx, models.Player{Name: "Carol"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("expected second player ID 2, got %d", second.ID)
	}

	count, err := m.Players().Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 players, got %d", count)
	}
}

func TestPlayerStore_AddSkipsIDGaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PlayersFile)
	content := "player_id,player_name,coach,batch,status\n7,Grace,,,\n3,Heidi,,,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(common.NewSilentLogger(), &config.StorageConfig{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	added, err := m.Players().Add(context.Background(), models.Player{Name: "Ivan"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != 8 {
		t.Errorf("expected next ID 8 (max+1), got %d", added.ID)
	}
}

func TestPlayerStore_CorruptTableTreatedAsEmpty(t *testing.T) {
	m := newTestManager(t)
	path := filepath.Join(m.DataDir(), PlayersFile)

	// Inconsistent field counts make the CSV reader fail.
	if err := os.WriteFile(path, []byte("player_id\n1,2,3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	players, err := m.Players().List(context.Background())
	if err != nil {
		t.Fatalf("List should not fail on corrupt table: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("expected empty result for corrupt table, got %+v", players)
	}

	// A write on top of a corrupt table starts fresh.
	added, err := m.Players().Add(context.Background(), models.Player{Name: "Alice"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != 1 {
		t.Errorf("expected fresh table to restart IDs at 1, got %d", added.ID)
	}
}

func TestPlayerStore_MissingColumnsTolerated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PlayersFile)
	if err := os.WriteFile(path, []byte("player_id,player_name\n4,Dave\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(common.NewSilentLogger(), &config.StorageConfig{DataDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	players, err := m.Players().List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	if players[0].Name != "Dave" || players[0].Coach != "" || players[0].Status != "" {
		t.Errorf("unexpected row: %+v", players[0])
	}
}

func TestPlayerStore_FindByName(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	if _, err := m.Players().Add(ctx, models.Player{Name: "Alice"}); err != nil {
		t.Fatal(err)
	}

	found, err := m.Players().FindByName(ctx, "Alice")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if found == nil || found.Name != "Alice" {
		t.Errorf("expected to find Alice, got %+v", found)
	}

	missing, err := m.Players().FindByName(ctx, "Nobody")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown name, got %+v", missing)
	}
}

func TestCompanyStore_AddAndList(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	added, err := m.Companies().Add(ctx, models.Company{Name: "Acme", Sector: "Industrials", Notes: "note"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != 1 {
		t.Errorf("expected company ID 1, got %d", added.ID)
	}

	companies, err := m.Companies().List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(companies) != 1 || companies[0].Sector != "Industrials" {
		t.Errorf("unexpected companies: %+v", companies)
	}
}

func TestPortfolioStore_AddAppendsRow(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	entry := models.PortfolioEntry{
		PlayerID:      1,
		PlayerName:    "Alice",
		CompanyID:     2,
		CompanyName:   "Acme",
		AllocationPct: 7.5,
		Notes:         "starter position",
	}
	if _, err := m.Portfolios().Add(ctx, entry); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entries, err := m.Portfolios().List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.PlayerName != "Alice" || got.CompanyName != "Acme" || got.AllocationPct != 7.5 {
		t.Errorf("unexpected entry: %+v", got)
	}

	count, err := m.Portfolios().Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestSnapshotCache_InvalidatedOnWrite(t *testing.T) {
	cfg := &config.StorageConfig{
		DataDir:         t.TempDir(),
		CacheTTLSeconds: 60,
	}
	m, err := NewManager(common.NewSilentLogger(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Prime the cache with the empty table.
	if _, err := m.Players().List(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Players().Add(ctx, models.Player{Name: "Alice"}); err != nil {
		t.Fatal(err)
	}

	players, err := m.Players().List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 {
		t.Errorf("expected the write to invalidate the cached snapshot, got %+v", players)
	}
}

func TestSaveTable_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")

	if err := saveTable(path, []models.Company{{ID: 1, Name: "Acme"}}); err != nil {
		t.Fatalf("saveTable failed: %v", err)
	}
	if err := saveTable(path, []models.Company{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}}); err != nil {
		t.Fatalf("saveTable failed: %v", err)
	}

	rows, err := loadTable[models.Company](path)
	if err != nil {
		t.Fatalf("loadTable failed: %v", err)
	}
	if len(rows) != 2 || rows[1].Name != "Globex" {
		t.Errorf("unexpected rows: %+v", rows)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the table file in %s, found %d entries", dir, len(entries))
	}
}
