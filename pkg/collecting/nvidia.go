package collecting

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// NvidiaSensor reads the core temperature of one NVIDIA GPU through NVML.
type NvidiaSensor struct {
	initialized bool
	index       int
	device      nvml.Device
}

// NewNvidiaSensor initializes NVML and binds the device at index.
func NewNvidiaSensor(index int) (*NvidiaSensor, error) {
	n := &NvidiaSensor{index: index}
	if err := n.init(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *NvidiaSensor) Name() string { return "NVIDIA" }

func (n *NvidiaSensor) init() error {
	if n.initialized {
		return nil
	}
	if ret := nvml.Init(); !errors.Is(ret, nvml.SUCCESS) {
		return fmt.Errorf("failed to initialize NVML: %s", nvml.ErrorString(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if !errors.Is(ret, nvml.SUCCESS) || count == 0 {
		nvml.Shutdown()
		return fmt.Errorf("no NVIDIA devices found")
	}
	if n.index >= count {
		nvml.Shutdown()
		return fmt.Errorf("gpu index %d out of range (%d devices)", n.index, count)
	}

	device, ret := nvml.DeviceGetHandleByIndex(n.index)
	if !errors.Is(ret, nvml.SUCCESS) {
		nvml.Shutdown()
		return fmt.Errorf("failed to get device %d: %s", n.index, nvml.ErrorString(ret))
	}

	n.device = device
	n.initialized = true
	return nil
}

// Temperature returns the GPU die temperature in Celsius.
func (n *NvidiaSensor) Temperature() (float64, error) {
	if !n.initialized {
		return 0, fmt.Errorf("NVML not initialized")
	}
	temp, ret := n.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if !errors.Is(ret, nvml.SUCCESS) {
		return 0, fmt.Errorf("gpu %d temperature: %s", n.index, nvml.ErrorString(ret))
	}
	return float64(temp), nil
}

func (n *NvidiaSensor) Close() error {
	if n.initialized {
		nvml.Shutdown()
		n.initialized = false
	}
	return nil
}
