package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/bvgm/dcforum/internal/database"
	"gitlab.com/bvgm/dcforum/internal/discord"
)

var listChannel string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list stored forum tags",
	Long: `List forum tags stored for a channel. Without --channel a per-channel
summary is printed instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := viper.GetViper()

		d, err := database.New(cfg.GetString("database.dsn"))
		if err != nil {
			fmt.Printf("connect to database: %s\n", err)
			return
		}
		defer d.Close()

		if listChannel == "" {
			listChannels(ctx, d)
			return
		}

		channelID, err := discord.ParseSnowflake(listChannel)
		if err != nil {
			fmt.Printf("bad channel id: %s\n", err)
			return
		}

		tags, err := d.ListTags(ctx, channelID)
		if err != nil {
			if errors.Is(err, database.ErrNoTags) {
				fmt.Printf("no tags stored for channel %s\n", channelID)
				return
			}
			fmt.Printf("load database: %s\n", err)
			return
		}

		renderTags(tags)
	},
}

func listChannels(ctx context.Context, d database.Tagdb) {
	channels, err := d.ListChannels(ctx)
	if err != nil {
		fmt.Printf("load database: %s\n", err)
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleColoredDark)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Channel ID", "Tags"})
	for _, c := range channels {
		t.AppendRow(table.Row{c.ChannelID, c.Count})
	}
	t.Render()
}

func renderTags(tags []discord.ForumTag) {
	t := table.NewWriter()
	t.SetStyle(table.StyleColoredDark)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Name", "Moderated", "Emoji ID", "Emoji Name", "Created"})
	for _, tag := range tags {
		t.AppendRow(table.Row{
			tag.ID, tag.Name, tag.Moderated, optSnowflake(tag.EmojiID), optStr(tag.EmojiName), tag.ID.Time(),
		})
	}
	t.Render()
}

func optSnowflake(s *discord.Snowflake) string {
	if s == nil {
		return ""
	}
	return s.String()
}

func optStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func init() {
	tagsCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listChannel, "channel", "", "Channel ID to list tags for.")
}
