package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inspectana/leadgen/internal/store"
)

var (
	requestsLimit  int
	requestsOffset int
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List stored inspection requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		reqs, err := st.ListInspectionRequests(cmd.Context(), store.ListFilter{
			Limit:  requestsLimit,
			Offset: requestsOffset,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tTYPE\tCITY\tCREATED")
		for _, r := range reqs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.FullName, r.Email, r.InspectionType, r.City,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	requestsCmd.Flags().IntVar(&requestsLimit, "limit", 50, "max rows to list")
	requestsCmd.Flags().IntVar(&requestsOffset, "offset", 0, "rows to skip")
	rootCmd.AddCommand(requestsCmd)
}
