package types

// Notification kinds as reported by the notifications endpoint.
const (
	NotificationAlarm    = "Alarm"
	NotificationTimer    = "Timer"
	NotificationReminder = "Reminder"
)

// Notification is one alarm, timer or reminder on a device.
type Notification struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Status             string `json:"status"` // ON, OFF, PAUSED
	DeviceSerialNumber string `json:"deviceSerialNumber"`
	DeviceType         string `json:"deviceType"`
	// Alarms and reminders carry a date and time; timers carry the
	// remaining duration in milliseconds.
	OriginalDate      string `json:"originalDate,omitempty"`
	OriginalTime      string `json:"originalTime,omitempty"`
	RemainingTimeMs   int64  `json:"remainingTime,omitempty"`
	Label             string `json:"reminderLabel,omitempty"`
	TriggerTimeMillis int64  `json:"alarmTime,omitempty"`
	Recurring         string `json:"recurringPattern,omitempty"`
}

// ReminderRequest creates a new reminder on a device.
type ReminderRequest struct {
	DeviceSerialNumber string `json:"deviceSerialNumber"`
	DeviceType         string `json:"deviceType"`
	Label              string `json:"reminderLabel"`
	TriggerTimeMillis  int64  `json:"alarmTime"`
	TimeZone           string `json:"timeZoneId,omitempty"`
}

// DNDState is the do-not-disturb state of one device.
type DNDState struct {
	DeviceSerialNumber string `json:"deviceSerialNumber"`
	DeviceType         string `json:"deviceType"`
	Enabled            bool   `json:"enabled"`
}

// CalendarEvent is one upcoming event from a linked calendar.
type CalendarEvent struct {
	EventID     string `json:"eventId"`
	Summary     string `json:"summary"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	CalendarID  string `json:"calendarId,omitempty"`
	AllDayEvent bool   `json:"allDayEvent,omitempty"`
}
