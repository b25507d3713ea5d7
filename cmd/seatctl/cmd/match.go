package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <match-id>",
	Short: "Show the gating flag and reserved count of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid match id %q", args[0])
		}
		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		st, err := svc.MatchStatus(cmd.Context(), id)
		if err != nil {
			return err
		}
		flag := st.Status
		if flag == "" {
			flag = "(unset)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "match %d: lifecycle=%s flag=%s reserved=%d/%d\n",
			st.MatchID, st.Lifecycle, flag, st.ReservedCount, st.Capacity)
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one status reconciliation pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		rep, err := svc.Reconcile(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "checked=%d written=%d failed=%d\n", rep.Checked, rep.Written, rep.Failed)
		return err
	},
}
