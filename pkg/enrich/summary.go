package enrich

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/radiofrance/maestro-allure/pkg/allure"
)

// printSummary displays the enriched test cases in stdout as a nice table.
func printSummary(results []allure.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	var data [][]string
	for _, result := range results {
		screenshot := "-"
		if len(result.Attachments) > 0 {
			screenshot = result.Attachments[0].Source
		}
		data = append(data, []string{
			result.Name,
			result.Status,
			strconv.Itoa(len(result.Steps)),
			screenshot,
		})
	}

	table.AppendBulk(data)

	table.SetHeader([]string{"Test", "Status", "Steps", "Screenshot"})
	table.Render()
}
