/*
Copyright © 2025 <admin@goswami.ru>
*/
package cmd

import (
	"context"
	"os"

	"github.com/go-faster/jx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitlab.com/bvgm/dcforum/internal/database"
	"gitlab.com/bvgm/dcforum/internal/discord"
)

var importChannel string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Decode a tag document and store the tags.",
	Long: `Decode a forum tag JSON document (a single tag object or an array of them)
and upsert the tags into the database under the given channel.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := viper.GetViper()

		channelID, err := discord.ParseSnowflake(importChannel)
		if err != nil {
			log.Fatal().Err(err).Msg("bad channel id")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("read tag document")
		}

		tags, err := discord.NewTagDecoder().DecodeAll(jx.DecodeBytes(data))
		if err != nil {
			log.Fatal().Err(err).Str("file", args[0]).Msg("decode tag document")
		}

		d, err := database.New(cfg.GetString("database.dsn"))
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer d.Close()

		if err := d.UpsertTags(ctx, channelID, tags); err != nil {
			log.Fatal().Err(err).Msg("store tags")
		}

		log.Info().
			Int("count", len(tags)).
			Str("channel", channelID.String()).
			Msg("tags imported")
	},
}

func init() {
	tagsCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importChannel, "channel", "", "Channel ID the tags belong to.")
	if err := importCmd.MarkFlagRequired("channel"); err != nil {
		log.Fatal().Err(err).Msg("mark channel flag required")
	}
}
