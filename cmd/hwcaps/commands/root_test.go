package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"codeberg.org/mutker/hwcaps/internal/printer"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	dir     string
	profile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	cfgPath := filepath.Join(dir, "hwcaps.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level = \"error\"\n"), 0o600))
	t.Setenv("HWCAPS_CONFIG", cfgPath)

	data, err := os.ReadFile(filepath.Join("testdata", "device.yaml"))
	require.NoError(t, err)
	profile := filepath.Join(dir, "device.yaml")
	require.NoError(t, os.WriteFile(profile, data, 0o600))

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	return &harness{t: t, dir: dir, profile: profile}
}

// exec runs hwcaps with args and returns stdout, stderr and the error.
func (h *harness) exec(args ...string) (string, string, error) {
	h.t.Helper()

	var stdout, stderr bytes.Buffer
	restore := printer.SetOutput(&stdout, &stderr)
	defer restore()

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func (h *harness) withProfile(args ...string) []string {
	return append([]string{"--profile", h.profile}, args...)
}

func TestGetAndSetPersist(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec(h.withProfile("get", "key_swap")...)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, _, err = h.exec(h.withProfile("set", "key-swap", "on")...)
	require.NoError(t, err)
	assert.Contains(t, out, "set key_swap")

	out, _, err = h.exec(h.withProfile("get", "FEATURE_KEY_SWAP")...)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestBooleanCommandOnStructuredFeature(t *testing.T) {
	h := newHarness(t)

	_, stderr, err := h.exec(h.withProfile("get", "display_color_calibration")...)
	require.Error(t, err)
	assert.Equal(t, "Invalid argument", err.Error())
	assert.Contains(t, stderr, "is not a boolean")
}

func TestUnknownFeatureName(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.exec("supported", "FEATURE_WARP_DRIVE")
	require.Error(t, err)
	assert.Equal(t, "Invalid argument", err.Error())

	out, _, err := h.exec(h.withProfile("supported", "FEATURE_KEY_SWAP")...)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestSetRejectsBadState(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.exec(h.withProfile("set", "key_swap", "maybe")...)
	require.Error(t, err)
	assert.Equal(t, "Invalid argument", err.Error())
}

func TestCalibrationClampsWrites(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.exec(h.withProfile("calibration", "set", "--", "300", "-5", "128")...)
	require.NoError(t, err)

	out, _, err := h.exec(h.withProfile("calibration", "get")...)
	require.NoError(t, err)
	assert.Regexp(t, `red\s+255`, out)
	assert.Regexp(t, `green\s+0`, out)
	assert.Regexp(t, `blue\s+128`, out)

	out, _, err = h.exec(h.withProfile("calibration", "range")...)
	require.NoError(t, err)
	assert.Regexp(t, `max\s+255`, out)
}

func TestLegacyServiceWithoutProfile(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec("features")
	require.NoError(t, err)
	assert.Regexp(t, `reading_enhancement\s+boolean\s+supported`, out)
	assert.Regexp(t, `display_color_calibration\s+calibration\s+supported`, out)
	assert.Regexp(t, `key_swap\s+boolean\s+-`, out)

	out, _, err = h.exec("set", "reading_enhancement", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "✓")

	_, _, err = h.exec("--hardware-abstraction=false", "set", "reading_enhancement", "on")
	require.NoError(t, err)
}

func TestLegacyStatePersistsInProfile(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.exec(h.withProfile("set", "reading_enhancement", "on")...)
	require.NoError(t, err)

	out, _, err := h.exec(h.withProfile("get", "reading_enhancement")...)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestDisplayModeMapping(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec(h.withProfile("--display-mode-mapping", "vivid:saturated", "--filter-display-modes", "modes", "list")...)
	require.NoError(t, err)
	assert.Equal(t, "1\tsaturated\n", out)

	_, _, err = h.exec(h.withProfile("modes", "set", "--default", "1")...)
	require.NoError(t, err)

	out, _, err = h.exec(h.withProfile("--display-mode-mapping", "vivid:saturated", "modes", "default")...)
	require.NoError(t, err)
	assert.Contains(t, out, "1:saturated")
}

func TestBalanceAndPicture(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec(h.withProfile("balance", "set", "--", "-40")...)
	require.NoError(t, err)
	assert.Contains(t, out, "set color balance")

	out, _, err = h.exec(h.withProfile("balance", "get")...)
	require.NoError(t, err)
	assert.Equal(t, "-40\n", out)

	_, _, err = h.exec(h.withProfile("picture", "set", "--clamp", "500", "1", "1", "1")...)
	require.NoError(t, err)

	out, _, err = h.exec(h.withProfile("picture", "get")...)
	require.NoError(t, err)
	assert.Regexp(t, `hue\s+180`, out)

	out, _, err = h.exec(h.withProfile("picture", "ranges")...)
	require.NoError(t, err)
	assert.Regexp(t, `saturation_threshold\s+0 \.\. 1`, out)
}

func TestGestures(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.exec(h.withProfile("gestures", "set", "1", "on")...)
	require.NoError(t, err)

	out, _, err := h.exec(h.withProfile("gestures", "list")...)
	require.NoError(t, err)
	assert.Regexp(t, `1\s+double_tap\s+key=250\s+on`, out)
}

func TestUnsupportedFeaturesFailSoft(t *testing.T) {
	h := newHarness(t)

	out, _, err := h.exec("--hardware-abstraction=false", "modes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "not supported")

	out, _, err = h.exec("--hardware-abstraction=false", "balance", "set", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "not supported")
}

func TestJournal(t *testing.T) {
	h := newHarness(t)
	db := filepath.Join(h.dir, "journal.db")
	journalArgs := []string{"--journal", "--journal-db", db, "--journal-backup-dir", filepath.Join(h.dir, "backups")}

	_, _, err := h.exec(append(journalArgs, h.withProfile("set", "key_swap", "on")...)...)
	require.NoError(t, err)
	_, _, err = h.exec(append(journalArgs, h.withProfile("set", "touch_hovering", "on")...)...)
	require.NoError(t, err)

	out, _, err := h.exec(append(journalArgs, "journal")...)
	require.NoError(t, err)
	assert.Regexp(t, `touch_hovering\s+set_enabled\s+failed`, out)
	assert.Regexp(t, `key_swap\s+set_enabled\s+ok`, out)

	out, _, err = h.exec("journal")
	require.NoError(t, err)
	assert.Contains(t, out, "journal is disabled")
}

func TestMutationsHoldPidLock(t *testing.T) {
	h := newHarness(t)
	pidPath := filepath.Join(os.TempDir(), "hwcaps.pid")
	require.NoError(t, os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getppid())), 0o600))

	_, _, err := h.exec(h.withProfile("set", "key_swap", "on")...)
	require.Error(t, err)
	assert.Equal(t, "Another hwcaps invocation is running", err.Error())

	// reads do not take the lock
	out, _, err := h.exec(h.withProfile("get", "key_swap")...)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.exec("--log-level", "loud", "features")
	require.Error(t, err)
	assert.Equal(t, "Invalid configuration", err.Error())
}
