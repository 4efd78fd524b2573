// Package notify forwards sensor readings to consumers and dispatches
// commands from them.
//
// A device daemon runs a framework Loop with a Notifier, which publishes
// the latest event of its Source periodically while switched on, and an
// Endpoint per transport delivering commands into the Loop. Consumers use
// a Connector to discover devices and a DeviceConn to send commands.
package notify
