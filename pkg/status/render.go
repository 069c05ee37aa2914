package status

import (
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders records as a terminal table.
func WriteTable(w io.Writer, records []Record) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"Source", "Destination", "Name", "Type", "Status", "Notes", "Time"})
	for _, rec := range records {
		table.Append([]string{
			rec.SourceServer,
			rec.DestinationServer,
			rec.Name,
			rec.Type,
			rec.Status.String(),
			rec.Notes,
			rec.DateTime.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

// WriteJSON renders records as a JSON array, suitable for piping into other
// tooling.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
