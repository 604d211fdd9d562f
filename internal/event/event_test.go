package event

import (
	"os"
	"path/filepath"
	"testing"

	"server-herald/internal/database"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, group, file, content string) {
	t.Helper()
	path := filepath.Join(dir, group, file)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestHandlerCountsIncludesEmptyGroups(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "messageCreate", "a.json", `{"handler":"x"}`)
	writeModule(t, dir, "messageCreate", "b.json", `{"handler":"y"}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "guildCreate"), 0o755))

	counts := HandlerCounts(dir)

	assert.Equal(t, 2, counts["messageCreate"])
	assert.Equal(t, 0, counts["guildCreate"])
}

func TestLoadAllResolvesHandlersInOrder(t *testing.T) {
	var order []string
	RegisterHandler("first", func(s *discordgo.Session, evt any, db database.Handles) error {
		order = append(order, "first")
		return nil
	})
	RegisterHandler("second", func(s *discordgo.Session, evt any, db database.Handles) error {
		order = append(order, "second")
		return nil
	})

	dir := t.TempDir()
	writeModule(t, dir, "messageCreate", "01-first.json", `{"handler":"first"}`)
	writeModule(t, dir, "messageCreate", "02-second.json", `{"handler":"second"}`)

	loaded := LoadAll(dir)
	require.Len(t, loaded["messageCreate"], 2)

	for _, fn := range loaded["messageCreate"] {
		require.NoError(t, fn(nil, nil, nil))
	}
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestLoadAllSkipsUnknownHandlers(t *testing.T) {
	RegisterHandler("known", func(s *discordgo.Session, evt any, db database.Handles) error { return nil })

	dir := t.TempDir()
	writeModule(t, dir, "ready", "01-missing.json", `{"handler":"never-registered"}`)
	writeModule(t, dir, "ready", "02-known.json", `{"handler":"known"}`)

	loaded := LoadAll(dir)
	assert.Len(t, loaded["ready"], 1)
}
