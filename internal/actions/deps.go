// Package actions implements the echoctl commands behind the dispatch
// registry. Every action is constructed lazily by its factory and receives
// its collaborators through Deps.
package actions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/echoctl/echoctl/internal/alexa"
	"github.com/echoctl/echoctl/internal/cache"
	"github.com/echoctl/echoctl/internal/device"
	"github.com/echoctl/echoctl/internal/logging"
	"github.com/echoctl/echoctl/internal/render"
	"github.com/echoctl/echoctl/pkg/types"
)

const (
	deviceCacheKey        = "devices"
	defaultDeviceCacheTTL = 5 * time.Minute
	maxSuggestions        = 3
)

// Deps carries the shared collaborators of all actions.
type Deps struct {
	Config *types.Config
	Client *alexa.Client
	Cache  *cache.Cache
	Out    *render.Renderer

	// Device narrows an action to one device; empty falls back to the
	// configured default device.
	Device string
}

// RequireAuth fails when no session cookie is configured. Used by action
// factories so a misconfigured command fails at load time with a clear
// cause.
func (d *Deps) RequireAuth() error {
	if d.Config.Cookie == "" {
		return errors.New("no Alexa session cookie configured (set ALEXA_COOKIE or the cookie config key)")
	}
	return nil
}

// DeviceRecords returns the device list, served from the on-disk cache when
// fresh. A fetch failure falls back to a stale cached copy when one exists.
func (d *Deps) DeviceRecords(ctx context.Context) ([]device.Record, error) {
	ttl := defaultDeviceCacheTTL
	if d.Config.DeviceCacheTTLSeconds > 0 {
		ttl = time.Duration(d.Config.DeviceCacheTTLSeconds) * time.Second
	}

	var records []device.Record
	err := d.Cache.Get(deviceCacheKey, ttl, &records)
	if err == nil {
		return records, nil
	}

	records, fetchErr := d.Client.GetDevices(ctx)
	if fetchErr != nil {
		// Serve a stale copy rather than nothing.
		if errors.Is(err, cache.ErrExpired) {
			var stale []device.Record
			if d.Cache.Get(deviceCacheKey, 0, &stale) == nil {
				logging.Warn().Err(fetchErr).Msg("device fetch failed, serving stale cache")
				return stale, nil
			}
		}
		return nil, fetchErr
	}

	if putErr := d.Cache.Put(deviceCacheKey, records); putErr != nil {
		logging.Warn().Err(putErr).Msg("failed to cache device list")
	}
	return records, nil
}

// RefreshDevices drops the cached device list and refetches it.
func (d *Deps) RefreshDevices(ctx context.Context) ([]device.Record, error) {
	if err := d.Cache.Invalidate(deviceCacheKey); err != nil {
		logging.Warn().Err(err).Msg("failed to invalidate device cache")
	}
	records, err := d.Client.GetDevices(ctx)
	if err != nil {
		return nil, err
	}
	if putErr := d.Cache.Put(deviceCacheKey, records); putErr != nil {
		logging.Warn().Err(putErr).Msg("failed to cache device list")
	}
	return records, nil
}

// ResolveDevice maps the selected friendly name (or serial) to its serial
// number, device type and raw record. Unknown names produce an error with
// near-miss suggestions.
func (d *Deps) ResolveDevice(ctx context.Context) (serial, deviceType string, rec device.Record, err error) {
	name := d.Device
	if name == "" {
		name = d.Config.DefaultDevice
	}
	if name == "" {
		return "", "", nil, errors.New("no device selected: pass --device or set defaultDevice")
	}

	records, err := d.DeviceRecords(ctx)
	if err != nil {
		return "", "", nil, err
	}

	serial, rec = device.FindIDByName(records, name, nil, nil)
	if rec == nil {
		// The argument may already be a serial number.
		serial, rec = device.FindRecordByID(records, name, nil)
	}
	if rec == nil {
		msg := fmt.Sprintf("device %q not found", name)
		if hints := device.Suggest(records, name, nil, maxSuggestions); len(hints) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(hints, ", "))
		}
		return "", "", nil, errors.New(msg)
	}
	if serial == "" {
		return "", "", nil, fmt.Errorf("device %q has no serial number", name)
	}

	deviceType, _ = rec["deviceType"].(string)
	if deviceType == "" {
		return "", "", nil, fmt.Errorf("device %q has no device type", name)
	}
	return serial, deviceType, rec, nil
}

// typedDevice decodes one raw device record into the typed DTO.
func typedDevice(rec device.Record) (types.Device, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return types.Device{}, err
	}
	var d types.Device
	if err := json.Unmarshal(data, &d); err != nil {
		return types.Device{}, err
	}
	return d, nil
}

// displayName returns the friendly name of a record, or fallback when the
// record carries none.
func displayName(rec device.Record, fallback string) string {
	for _, key := range device.DefaultNameKeys {
		if s, ok := rec[key].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
