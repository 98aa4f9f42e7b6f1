package input

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Device wraps one adb-addressable emulator or handset.
type Device struct {
	path      string
	device    string
	mu        sync.Mutex
	connected bool
}

// NewDevice creates a device handle for the emulator at the given port.
func NewDevice(adbPath, port string) *Device {
	return &Device{
		path:   adbPath,
		device: fmt.Sprintf("127.0.0.1:%s", port),
	}
}

// Connect establishes the adb connection.
func (d *Device) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := exec.Command(d.path, "connect", d.device)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to connect to device %s: %w, output: %s", d.device, err, output)
	}

	if !strings.Contains(string(output), "connected") {
		return fmt.Errorf("unexpected connect output: %s", output)
	}

	d.connected = true
	return nil
}

// Disconnect drops the adb connection.
func (d *Device) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := exec.Command(d.path, "disconnect", d.device)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("disconnect failed: %w, output: %s", err, output)
	}

	d.connected = false
	return nil
}

// IsConnected returns whether the device is connected
func (d *Device) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Shell executes a shell command on the device and returns output
func (d *Device) Shell(command string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd := exec.Command(d.path, "-s", d.device, "shell", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("shell command failed: %w, output: %s", err, output)
	}

	return string(output), nil
}

// ExecOut runs a command via exec-out and returns the raw binary output.
// Used for screencap, where shell would mangle the PNG stream.
func (d *Device) ExecOut(args ...string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	full := append([]string{"-s", d.device, "exec-out"}, args...)
	cmd := exec.Command(d.path, full...)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("exec-out failed: %w", err)
	}

	return output, nil
}

// ScreenSize queries the device resolution via wm size.
func (d *Device) ScreenSize() (int, int, error) {
	output, err := d.Shell("wm size")
	if err != nil {
		return 0, 0, err
	}

	// Expected form: "Physical size: 1280x720"
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}

		var w, h int
		if _, err := fmt.Sscanf(strings.TrimSpace(line[idx+1:]), "%dx%d", &w, &h); err == nil {
			return w, h, nil
		}
	}

	return 0, 0, fmt.Errorf("could not parse wm size output: %q", output)
}
