package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/bvgm/dcforum/internal/discord"
)

// Needs a database with the forum_tag table, see deploy/schema.sql.
func testDB(t *testing.T) Tagdb {
	t.Helper()

	dsn := os.Getenv("DCFORUM_TEST_DSN")
	if dsn == "" {
		t.Skip("DCFORUM_TEST_DSN not set")
	}

	d, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(d.Close)

	return d
}

func TestTagdb_UpsertAndListTags(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	emojiID := discord.Snowflake(5)
	emojiName := "📌"
	channelID := discord.Snowflake(900100)

	tags := []discord.ForumTag{
		{ID: 1, Name: "help", Moderated: true, EmojiID: &emojiID},
		{ID: 2, Name: "other", Moderated: false, EmojiName: &emojiName},
	}

	require.NoError(t, d.UpsertTags(ctx, channelID, tags))

	got, err := d.ListTags(ctx, channelID)
	require.NoError(t, err)
	require.Equal(t, tags, got)

	// Upsert with the same tag id replaces the row.
	tags[0].Name = "support"
	require.NoError(t, d.UpsertTags(ctx, channelID, tags[:1]))

	got, err = d.ListTags(ctx, channelID)
	require.NoError(t, err)
	assert.Equal(t, "support", got[0].Name)
	assert.Len(t, got, 2)
}

func TestTagdb_ListTagsEmptyChannel(t *testing.T) {
	d := testDB(t)

	got, err := d.ListTags(context.Background(), 424242)
	require.ErrorIs(t, err, ErrNoTags)
	assert.Nil(t, got)
}

func TestTagdb_ListChannels(t *testing.T) {
	d := testDB(t)
	ctx := context.Background()

	channelID := discord.Snowflake(900200)
	require.NoError(t, d.UpsertTags(ctx, channelID, []discord.ForumTag{
		{ID: 10, Name: "a"},
		{ID: 11, Name: "b"},
	}))

	channels, err := d.ListChannels(ctx)
	require.NoError(t, err)

	var found bool
	for _, c := range channels {
		if c.ChannelID == channelID {
			found = true
			assert.GreaterOrEqual(t, c.Count, int64(2))
		}
	}
	assert.True(t, found)
}
