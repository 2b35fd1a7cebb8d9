package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trustbond/emissionsd/app"
	"github.com/trustbond/emissionsd/emissions"
	"github.com/trustbond/emissionsd/param"
)

const (
	flagStartTimestamp       = "start-timestamp"
	flagEpochLength          = "epoch-length"
	flagEmissionsPerEpoch    = "emissions-per-epoch"
	flagReductionCliff       = "reduction-cliff"
	flagReductionBasisPoints = "reduction-basis-points"
	flagOverwrite            = "overwrite"
)

// InitCmd writes the genesis emission schedule (checkpoint 0) and the
// default app.toml into the home directory.
func InitCmd(ctx *Context, defaultNodeHome string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the home directory with a genesis emission schedule",
		RunE: func(_ *cobra.Command, _ []string) error {
			genPath := ctx.Config.GenesisSchedulePath
			if FileExists(genPath) && !viper.GetBool(flagOverwrite) {
				return fmt.Errorf("genesis schedule already exists: %v", genPath)
			}

			gen := &app.GenesisSchedule{
				StartTimestamp:       viper.GetInt64(flagStartTimestamp),
				EpochLength:          viper.GetInt64(flagEpochLength),
				EmissionsPerEpoch:    viper.GetString(flagEmissionsPerEpoch),
				ReductionCliff:       viper.GetInt64(flagReductionCliff),
				ReductionBasisPoints: viper.GetInt64(flagReductionBasisPoints),
			}
			if gen.StartTimestamp < 0 {
				gen.StartTimestamp = time.Now().Unix()
			}

			init, err := gen.ToCheckpointInit()
			if err != nil {
				return err
			}
			if _, err := emissions.BuildCheckpoint(nil, init); err != nil {
				return err
			}
			if err := app.SaveGenesisSchedule(genPath, gen); err != nil {
				return err
			}

			ctx.Logger.Info("wrote genesis emission schedule",
				"path", genPath,
				"start", gen.StartTimestamp,
				"epochLength", gen.EpochLength)
			return nil
		},
	}

	cmd.Flags().Int64(flagStartTimestamp, -1, "unix timestamp of epoch 0 (-1 means now)")
	cmd.Flags().Int64(flagEpochLength, param.DefaultEpochLength, "epoch length in seconds")
	cmd.Flags().String(flagEmissionsPerEpoch, param.DefaultEmissionsPerEpoch, "tokens emitted per epoch before any reduction (decimal or 0x-hex)")
	cmd.Flags().Int64(flagReductionCliff, param.DefaultReductionCliff, "epochs before the first emission reduction")
	cmd.Flags().Int64(flagReductionBasisPoints, param.DefaultReductionBasisPoints, "emission reduction per interval, in basis points")
	cmd.Flags().BoolP(flagOverwrite, "o", false, "overwrite an existing genesis schedule")
	return cmd
}
