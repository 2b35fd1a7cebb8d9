package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustbond/emissionsd/app"
)

// QueryCmd inspects the checkpoint store directly, one-shot, without a
// running daemon.
func QueryCmd(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the local emission schedule",
	}
	cmd.AddCommand(
		queryEpochCmd(ctx),
		queryEmissionsCmd(ctx),
		queryScheduleCmd(ctx),
	)
	return cmd
}

func queryEpochCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "epoch [timestamp]",
		Short: "Print the epoch number containing a unix timestamp (default: now)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := openAppReadOnly(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			ts := time.Now().Unix()
			if len(args) == 1 {
				ts, err = strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid timestamp: %v", args[0])
				}
			}
			epoch, err := a.Controller().EpochAtTimestamp(ts)
			if err != nil {
				return err
			}
			fmt.Println(epoch)
			return nil
		},
	}
}

func queryEmissionsCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "emissions [epoch]",
		Short: "Print the tokens emitted in an epoch (default: the current epoch)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := openAppReadOnly(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			var epoch int64
			if len(args) == 1 {
				epoch, err = strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid epoch: %v", args[0])
				}
			} else {
				epoch, err = a.Controller().EpochAtTimestamp(time.Now().Unix())
				if err != nil {
					return err
				}
			}
			amount, err := a.Controller().EmissionsAtEpoch(epoch)
			if err != nil {
				return err
			}
			fmt.Println(amount.ToBig().String())
			return nil
		},
	}
}

func queryScheduleCmd(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print every checkpoint of the emission schedule as JSON",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := openAppReadOnly(ctx)
			if err != nil {
				return err
			}
			defer a.Stop()

			type checkpointJSON struct {
				Index                int64  `json:"index"`
				StartTimestamp       int64  `json:"start_timestamp"`
				EpochLength          int64  `json:"epoch_length"`
				EmissionsPerEpoch    string `json:"emissions_per_epoch"`
				ReductionCliff       int64  `json:"reduction_cliff"`
				ReductionBasisPoints int64  `json:"reduction_basis_points"`
				RetentionFactor      int64  `json:"retention_factor"`
			}
			cps := a.Controller().Checkpoints()
			out := make([]checkpointJSON, len(cps))
			for i, cp := range cps {
				out[i] = checkpointJSON{
					Index:                int64(i),
					StartTimestamp:       cp.StartTimestamp,
					EpochLength:          cp.EpochLength,
					EmissionsPerEpoch:    cp.EmissionsPerEpochU256().ToBig().String(),
					ReductionCliff:       cp.ReductionCliff,
					ReductionBasisPoints: cp.ReductionBasisPoints,
					RetentionFactor:      cp.RetentionFactor,
				}
			}
			bz, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(bz))
			return nil
		},
	}
}

func openAppReadOnly(ctx *Context) (*app.App, error) {
	return app.NewApp(ctx.Config, ctx.Logger)
}
