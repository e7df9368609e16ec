package command

const (
	LogLevelFlag = "log-level"
	DataDirFlag  = "data-dir"
	ConfigFlag   = "config"
)
