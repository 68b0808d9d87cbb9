package alexa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/echoctl/echoctl/internal/device"
	"github.com/echoctl/echoctl/pkg/types"
)

// Player command types understood by the np/command endpoint.
const (
	CommandPlay     = "PlayCommand"
	CommandPause    = "PauseCommand"
	CommandNext     = "NextCommand"
	CommandPrevious = "PreviousCommand"
	CommandShuffle  = "ShuffleCommand"
	CommandRepeat   = "RepeatCommand"
)

// GetDevices returns the raw device records from the devices-v2 endpoint.
// Records stay loosely typed so the name/id resolution utilities can work
// over whatever fields Amazon returns.
func (c *Client) GetDevices(ctx context.Context) ([]device.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/devices-v2/device", url.Values{"cached": {"false"}}, nil)
	if err != nil {
		return nil, err
	}
	return recordsAt(body, "devices"), nil
}

// TypedDevices decodes raw device records into the typed DTO.
func TypedDevices(records []device.Record) ([]types.Device, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var devices []types.Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode device records: %w", err)
	}
	return devices, nil
}

// TypedGroups decodes raw multiroom group records into the typed DTO.
func TypedGroups(records []device.Record) ([]types.MultiroomGroup, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var groups []types.MultiroomGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode group records: %w", err)
	}
	return groups, nil
}

// SendPlayerCommand sends a playback command (see the Command* constants) to
// one device.
func (c *Client) SendPlayerCommand(ctx context.Context, serial, deviceType, command string) error {
	query := url.Values{
		"deviceSerialNumber": {serial},
		"deviceType":         {deviceType},
	}
	_, err := c.do(ctx, http.MethodPost, "/api/np/command", query, map[string]any{"type": command})
	return err
}

// SetVolume sets the speaker volume, 0-100.
func (c *Client) SetVolume(ctx context.Context, serial, deviceType string, level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("volume %d out of range 0-100", level)
	}
	query := url.Values{
		"deviceSerialNumber": {serial},
		"deviceType":         {deviceType},
	}
	body := map[string]any{"type": "VolumeLevelCommand", "volumeLevel": level}
	_, err := c.do(ctx, http.MethodPost, "/api/np/command", query, body)
	return err
}

// GetNotifications returns all alarms, timers and reminders across devices.
func (c *Client) GetNotifications(ctx context.Context) ([]types.Notification, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/notifications", nil, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Notifications []types.Notification `json:"notifications"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return out.Notifications, nil
}

// DismissNotification deletes one alarm, timer or reminder by id.
func (c *Client) DismissNotification(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/notifications/"+url.PathEscape(id), nil, nil)
	return err
}

// CreateReminder creates a reminder on a device.
func (c *Client) CreateReminder(ctx context.Context, req types.ReminderRequest) error {
	trigger := time.UnixMilli(req.TriggerTimeMillis)
	body := map[string]any{
		"type":               types.NotificationReminder,
		"status":             "ON",
		"deviceSerialNumber": req.DeviceSerialNumber,
		"deviceType":         req.DeviceType,
		"reminderLabel":      req.Label,
		"alarmTime":          req.TriggerTimeMillis,
		"originalDate":       trigger.Format("2006-01-02"),
		"originalTime":       trigger.Format("15:04:05.000"),
		"timeZoneId":         req.TimeZone,
	}
	_, err := c.do(ctx, http.MethodPut, "/api/notifications/createReminder", nil, body)
	return err
}

// GetDoNotDisturb returns the do-not-disturb state of every device.
func (c *Client) GetDoNotDisturb(ctx context.Context) ([]types.DNDState, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/dnd/device-status-list", nil, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		DoNotDisturbDeviceStatusList []types.DNDState `json:"doNotDisturbDeviceStatusList"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode dnd status: %w", err)
	}
	return out.DoNotDisturbDeviceStatusList, nil
}

// SetDoNotDisturb switches do-not-disturb for one device.
func (c *Client) SetDoNotDisturb(ctx context.Context, serial, deviceType string, enabled bool) error {
	body := types.DNDState{
		DeviceSerialNumber: serial,
		DeviceType:         deviceType,
		Enabled:            enabled,
	}
	_, err := c.do(ctx, http.MethodPut, "/api/dnd/status", nil, body)
	return err
}

// GetBluetooth returns the Bluetooth pairing state of every device.
func (c *Client) GetBluetooth(ctx context.Context) ([]types.BluetoothState, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/bluetooth", url.Values{"cached": {"false"}}, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		BluetoothStates []types.BluetoothState `json:"bluetoothStates"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bluetooth states: %w", err)
	}
	return out.BluetoothStates, nil
}

// ConnectBluetooth connects a device to a paired Bluetooth peer.
func (c *Client) ConnectBluetooth(ctx context.Context, serial, deviceType, address string) error {
	path := fmt.Sprintf("/api/bluetooth/pair-sink/%s/%s", url.PathEscape(deviceType), url.PathEscape(serial))
	_, err := c.do(ctx, http.MethodPost, path, nil, map[string]any{"bluetoothDeviceAddress": address})
	return err
}

// DisconnectBluetooth drops the active Bluetooth connection of a device.
func (c *Client) DisconnectBluetooth(ctx context.Context, serial, deviceType string) error {
	path := fmt.Sprintf("/api/bluetooth/disconnect-sink/%s/%s", url.PathEscape(deviceType), url.PathEscape(serial))
	_, err := c.do(ctx, http.MethodPost, path, nil, nil)
	return err
}

// GetMultiroomGroups returns the whole-home-audio group records.
func (c *Client) GetMultiroomGroups(ctx context.Context) ([]device.Record, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/lemur/tail", nil, nil)
	if err != nil {
		return nil, err
	}
	return recordsAt(body, "lemurs"), nil
}

// GetCalendarEvents returns upcoming events from linked calendars in the
// given window.
func (c *Client) GetCalendarEvents(ctx context.Context, from, to time.Time) ([]types.CalendarEvent, error) {
	query := url.Values{
		"startTime": {strconv.FormatInt(from.UnixMilli(), 10)},
		"endTime":   {strconv.FormatInt(to.UnixMilli(), 10)},
	}
	body, err := c.do(ctx, http.MethodGet, "/api/eon/upcomingEvents", query, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Events []types.CalendarEvent `json:"events"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode calendar events: %w", err)
	}
	return out.Events, nil
}

// Speak makes a device speak text via the behaviors preview endpoint.
func (c *Client) Speak(ctx context.Context, serial, deviceType, customerID, text string) error {
	operation := map[string]any{
		"@type": "com.amazon.alexa.behaviors.model.Sequence",
		"startNode": map[string]any{
			"@type": "com.amazon.alexa.behaviors.model.OpaquePayloadOperationNode",
			"type":  "Alexa.Speak",
			"operationPayload": map[string]any{
				"deviceSerialNumber": serial,
				"deviceType":         deviceType,
				"customerId":         customerID,
				"textToSpeak":        text,
			},
		},
	}
	sequence, err := json.Marshal(operation)
	if err != nil {
		return fmt.Errorf("failed to encode speak sequence: %w", err)
	}
	body := map[string]any{
		"behaviorId":   "PREVIEW",
		"sequenceJson": string(sequence),
		"status":       "ENABLED",
	}
	_, err = c.do(ctx, http.MethodPost, "/api/behaviors/preview", nil, body)
	return err
}

// recordsAt extracts an array of objects at key from body as loose records.
// Non-object elements are skipped.
func recordsAt(body []byte, key string) []device.Record {
	var records []device.Record
	for _, item := range gjson.GetBytes(body, key).Array() {
		if rec, ok := item.Value().(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records
}
