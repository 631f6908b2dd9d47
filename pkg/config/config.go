package config

// this holds the resolved configuration values from CLI
var (
	Output             string // path of the output file (empty: stdout)
	LogLevel           string // sets the log level (zap log level values)
	LogFormat          string // text vs json
	LogConfig          string // path to log config file
	AnalysisConfigFile string // path to analysis config file
	CurrentRating      int    // current iRating of the driver
	RunAnalysis        bool   // if true, the skill equivalency analysis is run
	Workers            int    // number of workers for the batch analysis
)
