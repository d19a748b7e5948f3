package log

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/walteh/rebrand/pkg/plan"
)

// RenderPlan renders pairs as a table in application order.
func RenderPlan(pairs plan.Plan) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"#", "Style", "From", "To"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for i, p := range pairs {
		table.Append([]string{fmt.Sprintf("%d", i+1), p.Description, p.From, p.To})
	}

	table.SetFooter([]string{"", "", fmt.Sprintf("%d pairs", len(pairs)), ""})
	table.Render()

	return buf.String()
}
