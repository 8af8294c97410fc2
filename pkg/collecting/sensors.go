package collecting

import (
	"path/filepath"
	"strings"

	"emperror.dev/errors"

	"ProcSampler/pkg/probing"
	"ProcSampler/pkg/utils"
)

// TemperatureReading is one hwmon temperature input.
type TemperatureReading struct {
	Chip    string
	Label   string
	Input   string
	Celsius float64
}

// HwmonSensors reads temperatures from the Linux hwmon sysfs tree.
// Labels are used verbatim, so "Package id 0" keeps its case.
type HwmonSensors struct {
	root string
}

// NewHwmonSensors returns a reader rooted at root, or /sys/class/hwmon when empty.
func NewHwmonSensors(root string) *HwmonSensors {
	if root == "" {
		root = utils.HwmonDir
	}
	return &HwmonSensors{root: root}
}

func (s *HwmonSensors) Name() string { return "Hwmon" }

// inputs lists every temp*_input below root in a stable order.
func (s *HwmonSensors) inputs() ([]string, error) {
	if !probing.IsDir(s.root) {
		return nil, errors.Wrapf(ErrSensorsUnavailable, "%s not present", s.root)
	}

	chips, err := probing.Glob(filepath.Join(s.root, hwmonPrefix+"*"))
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, chip := range chips {
		for _, dir := range []string{chip, filepath.Join(chip, deviceSubdir)} {
			matches, err := probing.Glob(filepath.Join(dir, tempInputGlob))
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, matches...)
		}
	}
	if len(inputs) == 0 {
		return nil, errors.Wrapf(ErrSensorsUnavailable, "no temperature inputs under %s", s.root)
	}
	return inputs, nil
}

func (s *HwmonSensors) chipName(input string) string {
	dir := filepath.Dir(input)
	if filepath.Base(dir) == deviceSubdir {
		dir = filepath.Dir(dir)
	}
	if name, err := probing.File(filepath.Join(dir, nameFile)); err == nil && name != "" {
		return name
	}
	return unknownValue
}

func labelFor(input string) string {
	label, err := probing.File(strings.TrimSuffix(input, inputSuffix) + labelSuffix)
	if err != nil {
		return ""
	}
	return label
}

func readCelsius(input string) (float64, error) {
	milli, err := probing.FileInt(input)
	if err != nil {
		return 0, err
	}
	return float64(milli) / utils.MilliDegreesPerC, nil
}

// Readings returns every readable temperature input. Inputs that fail to
// read (some drivers return EIO when idle) are skipped.
func (s *HwmonSensors) Readings() ([]TemperatureReading, error) {
	inputs, err := s.inputs()
	if err != nil {
		return nil, err
	}

	readings := make([]TemperatureReading, 0, len(inputs))
	for _, input := range inputs {
		c, err := readCelsius(input)
		if err != nil {
			continue
		}
		readings = append(readings, TemperatureReading{
			Chip:    s.chipName(input),
			Label:   labelFor(input),
			Input:   input,
			Celsius: c,
		})
	}
	return readings, nil
}

// Find returns the first sensor whose label contains substr (case-sensitive).
func (s *HwmonSensors) Find(substr string) (TemperatureReading, error) {
	inputs, err := s.inputs()
	if err != nil {
		return TemperatureReading{}, err
	}

	for _, input := range inputs {
		label := labelFor(input)
		if !strings.Contains(label, substr) {
			continue
		}
		c, err := readCelsius(input)
		if err != nil {
			return TemperatureReading{}, errors.Wrapf(err, "read sensor %q", label)
		}
		return TemperatureReading{
			Chip:    s.chipName(input),
			Label:   label,
			Input:   input,
			Celsius: c,
		}, nil
	}
	return TemperatureReading{}, errors.Wrapf(ErrSensorNotFound, "no label contains %q", substr)
}

// PackageTemperature returns the reading of the first "Package" sensor.
func (s *HwmonSensors) PackageTemperature() (float64, error) {
	r, err := s.Find(utils.PackageLabel)
	if err != nil {
		return 0, err
	}
	return r.Celsius, nil
}
