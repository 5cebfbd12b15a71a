package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/achilleasa/rigel/scene"
)

// List the built in scenes that the render commands accept.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, entry := range scene.Catalog() {
		table.Append([]string{entry.Name, entry.Description})
	}
	table.Render()

	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
