// internal/status/constants.go
package status

// Viewer-facing status messages.
// Clients match on the connected flag; the text is informational.

// MessageConnected is sent while a device session is live.
const MessageConnected = "PLC connected"

// MessageDisconnected is sent while no session is live and dialing is still allowed.
const MessageDisconnected = "PLC not connected"

// MessageGaveUp is sent once the attempt cap is reached.
const MessageGaveUp = "PLC unreachable, too many failed connection attempts"

// MessageClosed is sent when the service shuts the session down.
const MessageClosed = "PLC session closed"

// ---- HEALTH ----

// HealthOK is the only value of Health.Status; the process answering is the signal.
const HealthOK = "ok"

// ---- FAN-OUT ----

// SubscriberBuffer is the per-listener queue depth of the Hub.
const SubscriberBuffer = 8
