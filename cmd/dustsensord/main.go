package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	env "github.com/robotalks/airsense/pkg/env/device"
	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/notify"
	"github.com/robotalks/airsense/pkg/pms"
)

func init() {
	env.SetDeviceType("dust", notify.DeviceMeta{Description: "PMS7003 particulate matter sensor"})
	env.SetupFlags()
	pms.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	sensor := pms.NewConfig().MustNewSensor()
	fx.NewLoop().
		Add(e, sensor, e.NewNotifier(sensor, notify.DefaultNotifyInterval)).
		RunOrFail()
}
