// Package env provides the common setup of airsense programs.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID keys the protected machine ID so it doesn't expose the raw one.
const AppID = "airsense"

// MachineID retrieves the unique ID identifying the machine, falls back
// to the hostname when the machine ID is not available.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil {
		return id[:16]
	}
	glog.Warningf("machine id: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return ""
}
