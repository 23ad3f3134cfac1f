package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inspectana/leadgen/internal/store"
)

var (
	leadsLimit  int
	leadsOffset int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored interest leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		leads, err := st.ListInterestLeads(cmd.Context(), store.ListFilter{
			Limit:  leadsLimit,
			Offset: leadsOffset,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCOMPANY\tCREATED")
		for _, l := range leads {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\n",
				l.ID, l.FirstName, l.LastName, l.Email, l.Company,
				l.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func init() {
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 50, "max rows to list")
	leadsCmd.Flags().IntVar(&leadsOffset, "offset", 0, "rows to skip")
	rootCmd.AddCommand(leadsCmd)
}
