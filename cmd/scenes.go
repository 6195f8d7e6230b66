package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/scene"
)

var scenesDir string

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List built-in scenes and scene files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listScenes(cmd.OutOrStdout(), scenesDir)
	},
}

func init() {
	scenesCmd.Flags().StringVar(&scenesDir, "dir", "scenes", "directory to scan for YAML scene files")
	rootCmd.AddCommand(scenesCmd)
}

func listScenes(w io.Writer, dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "Scene", "Description", "Render with"})
	for _, group := range groups {
		for _, s := range group.Scenes {
			usage := "render " + s.ID
			if s.Type == "file" {
				usage = "render file " + s.FilePath
			}
			table.Append([]string{group.Name, s.DisplayName, s.Description, usage})
		}
	}
	table.Render()

	_, err = fmt.Fprintln(w)
	return err
}
