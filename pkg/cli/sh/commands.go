package sh

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/airsense/pkg/msgs"
	"github.com/robotalks/airsense/pkg/notify"
)

// ParseOnOff parses the argument of an on/off switch.
func ParseOnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expect on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch %q, expect on or off", args[0])
}

// ParseCalibrate parses the zero point in mV.
func ParseCalibrate(args []string) (*msgs.Calibrate, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expect zero point in mV")
	}
	mv, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil || mv <= 0 {
		return nil, fmt.Errorf("invalid zero point %q", args[0])
	}
	return &msgs.Calibrate{ZeroMilliVolts: int32(mv)}, nil
}

var (
	// DiscoverCmd discovers devices.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "[TYPE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var typ string
			if len(c.Args) > 0 {
				typ = c.Args[0]
			}
			found, err := s.DiscoverDevices(typ)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if found == nil {
					found = []notify.DeviceInfo{}
				}
				out, err := json.Marshal(found)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(found) == 0 {
				c.Println("No devices found")
			}
			for _, info := range found {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a device, by discovery if ID is omitted.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[TYPE [ID]]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var ref notify.DeviceRef
			var err error
			switch len(c.Args) {
			case 0:
				ref, err = s.SelectDevice("")
			case 1:
				ref, err = s.SelectDevice(c.Args[0])
			default:
				ref = notify.DeviceRef{Type: c.Args[0], ID: c.Args[1]}
			}
			if err == nil {
				err = s.Connect(ref)
			}
			if err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current device.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// StatusCmd queries the status of the device.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Func: MustBeConnected(func(c *ishell.Context) {
			DoCommand(c, &msgs.StatusQuery{})
		}),
	}

	// SwitchCmd switches notifications of the device.
	SwitchCmd = ishell.Cmd{
		Name:    "switch",
		Aliases: []string{"sw"},
		Help:    "on|off",
		Func: MustBeConnected(func(c *ishell.Context) {
			on, err := ParseOnOff(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			DoCommand(c, &msgs.Switch{On: on})
		}),
	}

	// CalibrateCmd sets the zero point of a CO2 sensor.
	CalibrateCmd = ishell.Cmd{
		Name:    "calibrate",
		Aliases: []string{"cal"},
		Help:    "ZERO_MV",
		Func: MustBeConnected(func(c *ishell.Context) {
			msg, err := ParseCalibrate(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			DoCommand(c, msg)
		}),
	}

	// WatchCmd prints events received from the device.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "on|off",
		Func: MustBeConnected(func(c *ishell.Context) {
			on, err := ParseOnOff(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Watch(on)
		}),
	}
)
