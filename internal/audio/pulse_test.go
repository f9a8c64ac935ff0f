package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func devicesFixture() []Device {
	return []Device{
		{ID: "alsa_input.usb-mic", Description: "USB Microphone", Available: true},
		{ID: "alsa_input.internal", Description: "Internal Microphone", Available: true, Default: true},
		{ID: "alsa_input.headset", Description: "Bluetooth Headset", Available: false},
		{ID: "alsa_input.muted", Description: "Muted Array", Available: true, Muted: true},
	}
}

func TestSelectDefaultDevice(t *testing.T) {
	selected, err := selectDeviceFromList(devicesFixture(), "default")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.internal", selected.ID)

	selected, err = selectDeviceFromList(devicesFixture(), "")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.internal", selected.ID)
}

func TestSelectPreferredByIDOrDescription(t *testing.T) {
	selected, err := selectDeviceFromList(devicesFixture(), "usb-mic")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.usb-mic", selected.ID)

	selected, err = selectDeviceFromList(devicesFixture(), "usb microphone")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.usb-mic", selected.ID)
}

func TestSelectUnusablePreferredFallsBackToDefault(t *testing.T) {
	selected, err := selectDeviceFromList(devicesFixture(), "headset")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.internal", selected.ID)

	selected, err = selectDeviceFromList(devicesFixture(), "muted")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.internal", selected.ID)
}

func TestSelectErrors(t *testing.T) {
	_, err := selectDeviceFromList(nil, "default")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no audio input devices")

	_, err = selectDeviceFromList(devicesFixture(), "nonexistent")
	require.Error(t, err)
	require.Contains(t, err.Error(), "did not match any device")

	mutedDefault := []Device{{ID: "only", Available: true, Muted: true, Default: true}}
	_, err = selectDeviceFromList(mutedDefault, "default")
	require.Error(t, err)
	require.Contains(t, err.Error(), "muted")
}
