package commands

import (
	"github.com/spf13/cobra"

	"github.com/dmql/dmql-go/cli/internal/ui"
)

const exampleQueries = `# DMQL examples

## Selection

` + "```" + `
USE DATABASE sales
RELEVANCE TO customer_id, amount, region
FROM orders
WHERE amount > 100 AND region = 'west'
ORDER BY amount DESC
` + "```" + `

## Grouping

` + "```" + `
USE DATABASE sales
RELEVANCE TO region, amount
FROM orders
GROUP BY region
` + "```" + `

## Clustering

` + "```" + `
USE DATABASE customers
RELEVANCE TO age, income
FROM profiles
MINE CLUSTER K = 3
DISPLAY AS scatter_plot
` + "```" + `

## Anomaly detection

` + "```" + `
RELEVANCE TO amount
FROM transactions
MINE ANOMALIES
WITH threshold = 2.5
` + "```" + `

## Statistics

` + "```" + `
FROM measurements
MINE STATISTICS
WITH confidence_level = 0.95
` + "```" + `

Comments start with ` + "`--`" + ` and run to the end of the line. Keywords are
case-insensitive; string literals take single or double quotes.
`

// NewExamplesCommand creates the examples command.
func NewExamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show example queries",
		Long:  "Render a set of example DMQL queries covering the language's clauses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.PrintMarkdown(exampleQueries)
		},
	}
}
