package alexa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoctl/echoctl/pkg/types"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &types.Config{Domain: "alexa.amazon.com", Cookie: "session=abc", CSRF: "tok"}
	return NewClient(cfg, WithBaseURL(server.URL))
}

func TestAuthHeadersSent(t *testing.T) {
	var gotCookie, gotCSRF string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotCSRF = r.Header.Get("csrf")
		w.Write([]byte(`{"devices":[]}`))
	}))

	_, err := client.GetDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session=abc", gotCookie)
	assert.Equal(t, "tok", gotCSRF)
}

func TestGetDevicesRecords(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/devices-v2/device", r.URL.Path)
		w.Write([]byte(`{"devices":[
			{"accountName":"Salon Echo","serialNumber":"S1","deviceType":"T1","online":true},
			{"accountName":"Kitchen Dot","serialNumber":"S2","deviceType":"T2","online":false}
		]}`))
	}))

	records, err := client.GetDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Salon Echo", records[0]["accountName"])
	assert.Equal(t, "S1", records[0]["serialNumber"])

	devices, err := TypedDevices(records)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Dot", devices[1].AccountName)
	assert.True(t, devices[0].Online)
}

func TestSendPlayerCommand(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/np/command", r.URL.Path)
		gotQuery = r.URL.Query()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{}`))
	}))

	err := client.SendPlayerCommand(context.Background(), "S1", "T1", CommandPause)
	require.NoError(t, err)
	assert.Equal(t, "S1", gotQuery.Get("deviceSerialNumber"))
	assert.Equal(t, "T1", gotQuery.Get("deviceType"))
	assert.Equal(t, "PauseCommand", gotBody["type"])
}

func TestSetVolumeRange(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	assert.Error(t, client.SetVolume(context.Background(), "S1", "T1", 150))
	assert.Error(t, client.SetVolume(context.Background(), "S1", "T1", -1))
	assert.NoError(t, client.SetVolume(context.Background(), "S1", "T1", 40))
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"notifications":[]}`))
	}))

	_, err := client.GetNotifications(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.DismissNotification(context.Background(), "n1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{Status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(&APIError{Status: http.StatusForbidden}))
	assert.True(t, IsThrottled(&APIError{Status: http.StatusTooManyRequests}))
	assert.False(t, IsNotFound(&APIError{Status: http.StatusInternalServerError}))
	assert.False(t, IsNotFound(nil))
}

func TestGetDoNotDisturb(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dnd/device-status-list", r.URL.Path)
		w.Write([]byte(`{"doNotDisturbDeviceStatusList":[
			{"deviceSerialNumber":"S1","deviceType":"T1","enabled":true}
		]}`))
	}))

	states, err := client.GetDoNotDisturb(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.True(t, states[0].Enabled)
}

func TestConnectBluetoothPath(t *testing.T) {
	var gotPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	err := client.ConnectBluetooth(context.Background(), "S1", "T1", "AA:BB:CC")
	require.NoError(t, err)
	assert.Equal(t, "/api/bluetooth/pair-sink/T1/S1", gotPath)
}

func TestGetCalendarEventsWindow(t *testing.T) {
	var gotQuery url.Values
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"events":[{"eventId":"e1","summary":"Dentist","startTime":1700000000000}]}`))
	}))

	from := time.UnixMilli(1700000000000)
	to := from.Add(24 * time.Hour)
	events, err := client.GetCalendarEvents(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Dentist", events[0].Summary)
	assert.Equal(t, "1700000000000", gotQuery.Get("startTime"))
}

func TestSpeakSequence(t *testing.T) {
	var gotBody map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/behaviors/preview", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{}`))
	}))

	err := client.Speak(context.Background(), "S1", "T1", "C1", "hello")
	require.NoError(t, err)

	sequence, ok := gotBody["sequenceJson"].(string)
	require.True(t, ok)
	assert.Contains(t, sequence, "Alexa.Speak")
	assert.Contains(t, sequence, "hello")
}
