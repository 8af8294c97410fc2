package collecting

const (
	MetricRAMPercent         = "ram_percent"
	MetricCPUPercent         = "cpu_percent"
	MetricPackageTemperature = "package_temperature"
	MetricGPUTemperature     = "gpu_temperature"
)

const (
	hwmonPrefix   = "hwmon"
	tempInputGlob = "temp*_input"
	inputSuffix   = "_input"
	labelSuffix   = "_label"
	nameFile      = "name"
	deviceSubdir  = "device"
	unknownValue  = "unknown"
)
