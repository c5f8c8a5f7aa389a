package cmd

import (
	"fmt"
	"os"

	"github.com/go-faster/jx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gitlab.com/bvgm/dcforum/internal/discord"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Decode a tag document without storing it.",
	Long: `Decode a forum tag JSON document and print the result. Useful to inspect
what a payload resolves to before importing: unknown fields and legacy
emoji_id encodings are reported, structural problems fail the check.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("read tag document: %s\n", err)
			return
		}

		var unknown int
		td := discord.NewTagDecoder(discord.WithUnknownKeyFunc(func(key string) {
			unknown++
			log.Trace().Str("key", key).Str("file", args[0]).Msg("unknown forum tag field")
		}))

		tags, err := td.DecodeAll(jx.DecodeBytes(data))
		if err != nil {
			fmt.Printf("decode tag document: %s\n", err)
			os.Exit(1)
		}

		renderTags(tags)
		fmt.Printf("%d tag(s), %d unknown field(s) skipped\n", len(tags), unknown)
	},
}

func init() {
	tagsCmd.AddCommand(checkCmd)
}
