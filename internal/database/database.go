package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gitlab.com/bvgm/dcforum/internal/discord"
)

var ErrNoTags = errors.New("no tags stored for this channel")

const upsertTagQuery = `
INSERT INTO forum_tag (channel_id, tag_id, name, moderated, emoji_id, emoji_name)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (channel_id, tag_id) DO UPDATE
SET name = EXCLUDED.name,
    moderated = EXCLUDED.moderated,
    emoji_id = EXCLUDED.emoji_id,
    emoji_name = EXCLUDED.emoji_name`

const listTagsQuery = `
SELECT tag_id, name, moderated, emoji_id, emoji_name
FROM forum_tag
WHERE channel_id = $1
ORDER BY tag_id`

const listChannelsQuery = `
SELECT channel_id, count(*)
FROM forum_tag
GROUP BY channel_id
ORDER BY channel_id`

type Tagdb struct {
	pool *pgxpool.Pool
}

// ChannelTags is a per-channel summary row.
type ChannelTags struct {
	ChannelID discord.Snowflake
	Count     int64
}

func New(urn string) (Tagdb, error) {
	d := Tagdb{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.connect(ctx, urn); err != nil {
		return Tagdb{}, fmt.Errorf("New connect to database: %w", err)
	}

	if err := d.Ping(ctx); err != nil {
		return Tagdb{}, fmt.Errorf("ping to database: %s", err)
	}

	return d, nil
}

func (d *Tagdb) connect(ctx context.Context, urn string) error {

	pool, err := pgxpool.New(ctx, urn)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}

	d.pool = pool

	return nil
}

func (d *Tagdb) Close() {
	d.pool.Close()
}

func (d *Tagdb) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	return nil
}

// UpsertTags stores tags for a channel, replacing earlier versions with the
// same tag id. Sent as one batch.
func (d *Tagdb) UpsertTags(ctx context.Context, channelID discord.Snowflake, tags []discord.ForumTag) error {
	b := &pgx.Batch{}
	for _, tag := range tags {
		b.Queue(upsertTagQuery,
			int64(channelID),
			int64(tag.ID),
			tag.Name,
			tag.Moderated,
			emojiIDParam(tag.EmojiID),
			tag.EmojiName,
		)
	}

	br := d.pool.SendBatch(ctx, b)
	defer br.Close()

	for range tags {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert forum tags: %w", err)
		}
	}

	return nil
}

func (d *Tagdb) ListTags(ctx context.Context, channelID discord.Snowflake) ([]discord.ForumTag, error) {
	rows, err := d.pool.Query(ctx, listTagsQuery, int64(channelID))
	if err != nil {
		return nil, fmt.Errorf("list forum tags: %w", err)
	}
	defer rows.Close()

	var tags []discord.ForumTag
	for rows.Next() {
		var (
			tagID     int64
			name      string
			moderated bool
			emojiID   *int64
			emojiName *string
		)
		if err := rows.Scan(&tagID, &name, &moderated, &emojiID, &emojiName); err != nil {
			return nil, fmt.Errorf("scan forum tag: %w", err)
		}
		tags = append(tags, discord.ForumTag{
			ID:        discord.Snowflake(tagID),
			Name:      name,
			Moderated: moderated,
			EmojiID:   snowflakeFromRow(emojiID),
			EmojiName: emojiName,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list forum tags: %w", err)
	}

	if len(tags) == 0 {
		return nil, ErrNoTags
	}

	return tags, nil
}

func (d *Tagdb) ListChannels(ctx context.Context) ([]ChannelTags, error) {
	rows, err := d.pool.Query(ctx, listChannelsQuery)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	var channels []ChannelTags
	for rows.Next() {
		var (
			channelID int64
			count     int64
		)
		if err := rows.Scan(&channelID, &count); err != nil {
			return nil, fmt.Errorf("scan channel summary: %w", err)
		}
		channels = append(channels, ChannelTags{
			ChannelID: discord.Snowflake(channelID),
			Count:     count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}

	return channels, nil
}

func emojiIDParam(s *discord.Snowflake) *int64 {
	if s == nil {
		return nil
	}
	v := int64(*s)
	return &v
}

func snowflakeFromRow(v *int64) *discord.Snowflake {
	if v == nil {
		return nil
	}
	s := discord.Snowflake(*v)
	return &s
}
