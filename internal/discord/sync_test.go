package discord

import (
	"context"
	"errors"
	"testing"

	"server-herald/internal/command"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeRegistry struct {
	remote   []*discordgo.ApplicationCommand
	fetchErr error

	created []*discordgo.ApplicationCommand
	edited  map[string]*discordgo.ApplicationCommand
	deleted []string

	failCreate map[string]bool
}

func newFakeRegistry(remote ...*discordgo.ApplicationCommand) *fakeRegistry {
	return &fakeRegistry{
		remote:     remote,
		edited:     map[string]*discordgo.ApplicationCommand{},
		failCreate: map[string]bool{},
	}
}

func (f *fakeRegistry) Fetch() ([]*discordgo.ApplicationCommand, error) {
	return f.remote, f.fetchErr
}

func (f *fakeRegistry) Create(def *discordgo.ApplicationCommand) error {
	if f.failCreate[def.Name] {
		return errors.New("transport error")
	}
	f.created = append(f.created, def)
	return nil
}

func (f *fakeRegistry) Edit(id string, def *discordgo.ApplicationCommand) error {
	f.edited[id] = def
	return nil
}

func (f *fakeRegistry) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRegistry) ops() int {
	return len(f.created) + len(f.edited) + len(f.deleted)
}

var noLimit = rate.NewLimiter(rate.Inf, 1)

func TestSyncCreatesMissingCommand(t *testing.T) {
	reg := newFakeRegistry()
	local := []*command.Descriptor{{Name: "ping", Description: "Pong."}}

	require.NoError(t, sync(context.Background(), reg, local, noLimit))

	require.Len(t, reg.created, 1)
	assert.Equal(t, "ping", reg.created[0].Name)
	assert.Empty(t, reg.edited)
	assert.Empty(t, reg.deleted)
}

func TestSyncDeletesFlaggedCommand(t *testing.T) {
	reg := newFakeRegistry(&discordgo.ApplicationCommand{ID: "42", Name: "old", Description: "Old."})
	local := []*command.Descriptor{{Name: "old", Description: "Old.", Deleted: true}}

	require.NoError(t, sync(context.Background(), reg, local, noLimit))

	assert.Equal(t, []string{"42"}, reg.deleted)
	assert.Empty(t, reg.created)
	assert.Empty(t, reg.edited)
}

func TestSyncSkipsDeletedUnregisteredCommand(t *testing.T) {
	reg := newFakeRegistry()
	local := []*command.Descriptor{{Name: "gone", Deleted: true}}

	require.NoError(t, sync(context.Background(), reg, local, noLimit))
	assert.Zero(t, reg.ops())
}

func TestSyncUpdatesChangedCommand(t *testing.T) {
	reg := newFakeRegistry(&discordgo.ApplicationCommand{ID: "7", Name: "roll", Description: "Old text."})
	local := []*command.Descriptor{{Name: "roll", Description: "New text."}}

	require.NoError(t, sync(context.Background(), reg, local, noLimit))

	require.Contains(t, reg.edited, "7")
	assert.Equal(t, "New text.", reg.edited["7"].Description)
	assert.Empty(t, reg.created)
}

func TestSyncLeavesOrphanedRemoteCommandsAlone(t *testing.T) {
	reg := newFakeRegistry(&discordgo.ApplicationCommand{ID: "9", Name: "legacy", Description: "No local file."})

	require.NoError(t, sync(context.Background(), reg, nil, noLimit))
	assert.Zero(t, reg.ops())
}

func TestSyncIsIdempotent(t *testing.T) {
	local := []*command.Descriptor{
		{
			Name:        "roll",
			Description: "Roll a die.",
			Options: []command.Option{{
				Name:        "sides",
				Description: "Die size.",
				Type:        4,
				Choices:     []command.Choice{{Name: "d6", Value: float64(6)}, {Name: "d20", Value: float64(20)}},
			}},
		},
	}

	first := newFakeRegistry()
	require.NoError(t, sync(context.Background(), first, local, noLimit))
	require.Len(t, first.created, 1)

	// second pass against what the first one registered
	registered := first.created[0]
	registered.ID = "1"
	second := newFakeRegistry(registered)
	require.NoError(t, sync(context.Background(), second, local, noLimit))
	assert.Zero(t, second.ops())
}

func TestSyncFetchFailureAbortsPass(t *testing.T) {
	reg := newFakeRegistry()
	reg.fetchErr = errors.New("gateway down")

	err := sync(context.Background(), reg, []*command.Descriptor{{Name: "ping"}}, noLimit)
	assert.Error(t, err)
	assert.Zero(t, reg.ops())
}

func TestSyncContinuesAfterItemFailure(t *testing.T) {
	reg := newFakeRegistry()
	reg.failCreate["first"] = true
	local := []*command.Descriptor{
		{Name: "first", Description: "Fails."},
		{Name: "second", Description: "Works."},
	}

	require.NoError(t, sync(context.Background(), reg, local, noLimit))

	require.Len(t, reg.created, 1)
	assert.Equal(t, "second", reg.created[0].Name)
}

func TestAreDifferent(t *testing.T) {
	base := func() *command.Descriptor {
		return &command.Descriptor{
			Name:        "kick",
			Description: "Kick a member.",
			Options: []command.Option{
				{Name: "user", Description: "Target.", Type: 6, Required: true},
				{
					Name: "reason", Description: "Why.", Type: 3,
					Choices: []command.Choice{{Name: "spam", Value: "spam"}, {Name: "abuse", Value: "abuse"}},
				},
			},
		}
	}

	remote := func() *discordgo.ApplicationCommand {
		// options and choices deliberately listed in reverse order
		return &discordgo.ApplicationCommand{
			Name:        "kick",
			Description: "Kick a member.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name: "reason", Description: "Why.", Type: 3,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "abuse", Value: "abuse"},
						{Name: "spam", Value: "spam"},
					},
				},
				{Name: "user", Description: "Target.", Type: 6, Required: true},
			},
		}
	}

	t.Run("field ordering alone is not a difference", func(t *testing.T) {
		assert.False(t, areDifferent(remote(), base()))
	})

	t.Run("description", func(t *testing.T) {
		lc := base()
		lc.Description = "Changed."
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("option count", func(t *testing.T) {
		lc := base()
		lc.Options = lc.Options[:1]
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("option type", func(t *testing.T) {
		lc := base()
		lc.Options[0].Type = 3
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("required flag", func(t *testing.T) {
		lc := base()
		lc.Options[0].Required = false
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("missing remote option", func(t *testing.T) {
		lc := base()
		lc.Options[0].Name = "member"
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("choice count", func(t *testing.T) {
		lc := base()
		lc.Options[1].Choices = lc.Options[1].Choices[:1]
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("choice value", func(t *testing.T) {
		lc := base()
		lc.Options[1].Choices[0].Value = "other"
		assert.True(t, areDifferent(remote(), lc))
	})

	t.Run("numeric choice values compare across types", func(t *testing.T) {
		lc := &command.Descriptor{
			Name: "roll", Description: "Roll.",
			Options: []command.Option{{
				Name: "sides", Description: "Size.", Type: 4,
				Choices: []command.Choice{{Name: "d6", Value: float64(6)}},
			}},
		}
		rc := &discordgo.ApplicationCommand{
			Name: "roll", Description: "Roll.",
			Options: []*discordgo.ApplicationCommandOption{{
				Name: "sides", Description: "Size.", Type: 4,
				Choices: []*discordgo.ApplicationCommandOptionChoice{{Name: "d6", Value: 6}},
			}},
		}
		assert.False(t, areDifferent(rc, lc))
	})
}
