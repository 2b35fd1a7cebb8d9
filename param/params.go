package param

//FILE: schedule configurable params collected here!
const (
	/**basis-point scale**/
	BasisPointDenominator   int64 = 10_000
	MaxReductionBasisPoints int64 = 10_000

	/**default genesis schedule**/
	// 7-day epochs, 1,000,000 tokens per epoch (18 decimals), 10%
	// reduction every 4 epochs once the cliff is reached
	DefaultEpochLength          int64  = 7 * 24 * 3600
	DefaultEmissionsPerEpoch    string = "1000000000000000000000000"
	DefaultReductionCliff       int64  = 4
	DefaultReductionBasisPoints int64  = 1000

	/**rpc params**/
	DefaultRpcAddr        = "tcp://:8545"
	DefaultWsAddr         = "tcp://:8546"
	DefaultMaxCheckpoints = 10_000 // sanity bound for the checkpoints listing
)
