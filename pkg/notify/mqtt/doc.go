// Package mqtt carries Typed messages of airsense devices over MQTT.
//
// A device owns the topics under <prefix><type>/<id>/:
//
//	meta  retained DeviceMeta JSON, cleared when the device goes offline
//	msg   events and command replies published by the device
//	cmd   commands sent to the device
package mqtt
