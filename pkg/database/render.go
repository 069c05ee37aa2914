package database

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders database metadata as a terminal table.
func WriteTable(w io.Writer, details []Details) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Owner", "Collation", "Compat", "Recovery", "State", "Size MB", "Created", "Query Store"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetBorder(true)

	for _, d := range details {
		queryStore := "off"
		if d.QueryStoreOn {
			queryStore = "on"
		}
		table.Append([]string{
			d.Name,
			d.Owner,
			d.Collation,
			fmt.Sprintf("%d", d.CompatibilityLevel),
			d.RecoveryModel,
			d.State,
			fmt.Sprintf("%.2f", d.SizeMB),
			d.CreateDate.Format("2006-01-02 15:04:05"),
			queryStore,
		})
	}
	table.Render()
}

// WriteJSON renders database metadata as indented JSON.
func WriteJSON(w io.Writer, details []Details) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(details)
}
