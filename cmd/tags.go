/*
Copyright © 2025 <admin@goswami.ru>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tagsCmd represents the tags command
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Operations with forum channel tags",
	Long:  `Operations with forum channel tags: check, import, list etc.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tags called")
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
