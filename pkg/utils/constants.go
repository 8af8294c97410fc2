package utils

const (
	HwmonDir          = "/sys/class/hwmon"
	PackageLabel      = "Package"
	MilliDegreesPerC  = 1000
	DefaultJitterMin  = 150
	DefaultJitterMax  = 999
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04:05.000"
	EnvPrefix         = "PROCSAMPLER"
	DefaultGraphTitle = "ProcSampler"
)
