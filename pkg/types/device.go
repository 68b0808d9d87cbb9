package types

// Device describes one Alexa-connected device as reported by the
// devices-v2 endpoint. Only the fields echoctl acts on are typed; the raw
// record is carried separately for name/id resolution.
type Device struct {
	AccountName           string   `json:"accountName"`
	SerialNumber          string   `json:"serialNumber"`
	DeviceType            string   `json:"deviceType"`
	DeviceFamily          string   `json:"deviceFamily"`
	DeviceOwnerCustomerID string   `json:"deviceOwnerCustomerId,omitempty"`
	Online                bool     `json:"online"`
	Capabilities          []string `json:"capabilities,omitempty"`
	SoftwareVersion       string   `json:"softwareVersion,omitempty"`
}

// SupportsMusic reports whether the device can receive player commands.
func (d *Device) SupportsMusic() bool {
	for _, c := range d.Capabilities {
		if c == "AUDIO_PLAYER" || c == "AMAZON_MUSIC" || c == "TUNE_IN" {
			return true
		}
	}
	return false
}

// BluetoothDevice is one paired Bluetooth peer of an Echo device.
type BluetoothDevice struct {
	Address      string `json:"address"`
	FriendlyName string `json:"friendlyName"`
	Connected    bool   `json:"connected"`
}

// BluetoothState is the Bluetooth pairing state of one Echo device.
type BluetoothState struct {
	DeviceSerialNumber string            `json:"deviceSerialNumber"`
	PairedDeviceList   []BluetoothDevice `json:"pairedDeviceList"`
}

// MultiroomGroup is a whole-home-audio group ("lemur" in the wire format).
type MultiroomGroup struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	MemberSerials []string `json:"memberSerials"`
}
